package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	// AppName is reported to Postgres as application_name
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// StatementTimeout bounds every statement server-side; 0 keeps the server default
	StatementTimeout time.Duration

	// boot knobs, defaults applied in openPG
	ConnectRetries int
	PingTimeout    time.Duration
}

func (c PGConfig) withDefaults() PGConfig {
	if c.ConnectRetries <= 0 {
		c.ConnectRetries = 10
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = 3 * time.Second
	}
	return c
}
