package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/darts-scoreboard/internal/profile"
	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	playersCmd := &cobra.Command{
		Use:   "players",
		Short: "Add, remove, rename and inspect players",
	}
	playersCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every player",
			Args:  cobra.NoArgs,
			RunE:  withApp(listPlayers),
		},
		newShowCmd(),
		&cobra.Command{
			Use:   "add <username>",
			Short: "Add a new player",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
				if _, err := a.profiles.Create(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User '%s' added.\n", args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove <username>",
			Short: "Remove a player and their statistics",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
				if err := a.profiles.Remove(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User '%s' removed.\n", args[0])
				return nil
			}),
		},
		&cobra.Command{
			Use:   "rename <username> <new-username>",
			Short: "Rename a player, keeping their statistics",
			Args:  cobra.ExactArgs(2),
			RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
				if _, err := a.profiles.Rename(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "User '%s' renamed to '%s'.\n", args[0], args[1])
				return nil
			}),
		},
	)
	return playersCmd
}

func listPlayers(a *app, cmd *cobra.Command, _ []string) error {
	profiles, err := a.profiles.ListAll()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(profiles) == 0 {
		fmt.Fprintln(out, "No players yet. Add one with 'darts players add <username>'.")
	} else {
		names := make([]string, 0, len(profiles))
		for name := range profiles {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PLAYER\tGAMES\tWINS\tLOSSES")
		for _, name := range names {
			p := profiles[name]
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", p.Username, p.GamesPlayed, p.Wins, p.Losses)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if n := len(a.skipped); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d unreadable record(s) in %s were skipped.\n", n, a.cfg.DataDir)
		for path, err := range a.skipped {
			log.Debug("Skipped record", "path", path, "error", err)
		}
	}
	return nil
}

func newShowCmd() *cobra.Command {
	var share bool
	cmd := &cobra.Command{
		Use:   "show <username>",
		Short: "Show a player's counters",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
			p, err := a.profiles.Get(args[0])
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			if share {
				return a.notifier.SendPlayerStats(p, a.cfg.DryRun)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&share, "share", false, "Also post the stats to the configured channel")
	return cmd
}

// printProfile prints the counters followed by the segment grid: singles, doubles,
// trebles and then bulls and misses, one row of labels each.
func printProfile(out io.Writer, p profile.PlayerProfile) {
	fmt.Fprintf(out, "%s\n", p.Username)
	fmt.Fprintf(out, "Games: %d  Wins: %d  Losses: %d  Hits: %d\n", p.GamesPlayed, p.Wins, p.Losses, p.TotalHits())

	w := tabwriter.NewWriter(out, 0, 0, 1, ' ', tabwriter.AlignRight)
	for row := 0; row*20 < len(profile.Labels); row++ {
		end := min((row+1)*20, len(profile.Labels))
		labels := profile.Labels[row*20 : end]
		cells := make([]string, len(labels))
		for i, l := range labels {
			cells[i] = fmt.Sprintf("%s:%d", l, p.Stats[l])
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	w.Flush()
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <username>...",
		Short: "Select players in throwing order and start a session",
		Args:  cobra.ArbitraryArgs,
		RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
			candidates, err := a.candidates()
			if err != nil {
				return err
			}
			roster, err := a.selector.SelectRoster(candidates, args)
			if err != nil {
				return err
			}
			sess, err := a.sessions.Start(roster)
			if err != nil {
				return err
			}
			if err := a.notifier.AnnounceSession(sess, roster, a.cfg.DryRun); err != nil {
				log.Warn("Session started but could not be announced", "session", sess.ID, "error", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nPlayers selected (%d):\n", len(roster))
			for _, p := range roster {
				fmt.Fprintf(out, "- %s\n", p.Username)
			}
			fmt.Fprintf(out, "Session %s started.\n", sess.ID)
			return nil
		}),
	}
}

func newSessionsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recently started sessions",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
			sessions, err := a.sessions.List(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions yet.")
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintf(out, "%s  %s  %s\n", s.StartedAt.Local().Format("2006-01-02 15:04"), s.ID, strings.Join(s.Players, ", "))
			}
			return nil
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of sessions to show (0 for all)")
	return cmd
}

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show lifetime usage counters",
		Args:  cobra.NoArgs,
		RunE: withApp(func(a *app, cmd *cobra.Command, _ []string) error {
			counters, err := a.counters.GetAll()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(counters) == 0 {
				fmt.Fprintln(out, "No metrics recorded yet.")
				return nil
			}
			keys := make([]string, 0, len(counters))
			for k := range counters {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%d\n", k, counters[k])
			}
			return w.Flush()
		}),
	}
}
