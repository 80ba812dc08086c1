package config

// Config holds all configuration for the application.
type Config struct {
	// DataDir is the directory holding one JSON document per player.
	DataDir         string
	DBName          string
	Turso           TursoConfig
	Slack           SlackConfig
	MetricsTextfile string
	LogLevel        string
	LogFormat       string
	DryRun          bool
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// SlackEnabled reports whether announcements should go to Slack instead of the log.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}
