package config

// Config holds all configuration for the application.
type Config struct {
	Port            string
	Database        DatabaseConfig
	Slack           SlackConfig
	ProjectID       string
	ResultsTopic    string
	Paging          PagingConfig
	AnalyticsConfig string
}

// DatabaseConfig selects the SQL driver and where the data lives.
type DatabaseConfig struct {
	// Driver is one of "sqlite3", "libsql" or "pgx".
	Driver string
	// Name is the local database file for sqlite3/libsql, or ":memory:".
	Name string
	// DSN is the connection string used by the pgx driver.
	DSN   string
	Turso TursoConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether enough is configured to post to Slack.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type PagingConfig struct {
	DefaultLimit int
	MaxLimit     int
}
