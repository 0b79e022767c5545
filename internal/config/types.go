package config

// Config holds all configuration for the application.
type Config struct {
	Login          string
	Password       string
	Season         string
	DataDir        string
	DBName         string
	Slack          SlackConfig
	Turso          TursoConfig
	PushgatewayURL string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
