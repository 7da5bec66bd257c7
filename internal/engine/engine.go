package engine

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Engine is the engagement core: it persists member actions
// (comments, critiques, likes, reactions), keeps derived counters in
// step, fans out notifications, and appends karma ledger entries.
// It holds an explicit connection handle; no package-level state.
type Engine struct {
	db      *gorm.DB
	log     zerolog.Logger
	siteURL string
}

func New(db *gorm.DB, log zerolog.Logger) *Engine {
	return &Engine{db: db, log: log}
}

// WithSiteURL sets the base used when building notification URLs.
func (e *Engine) WithSiteURL(base string) *Engine {
	e.siteURL = base
	return e
}
