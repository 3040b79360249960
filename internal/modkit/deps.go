// Package modkit provides module wiring and core deps
package modkit

import (
	"socialfeed/internal/core/cursor"
	"socialfeed/internal/modkit/httpkit"
	"socialfeed/internal/modkit/repokit"
	"socialfeed/internal/platform/config"
	"socialfeed/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log    logger.Logger
	Cfg    config.Conf
	PG     repokit.TxRunner
	Cursor cursor.Codec
	// Auth resolves bearer tokens; a nil port rejects every protected request
	Auth *httpkit.Port
}
