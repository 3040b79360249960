// Package module wires the engagement resolver for other modules; it serves no routes
package module

import (
	"socialfeed/internal/modkit"
	"socialfeed/internal/modkit/httpkit"
	"socialfeed/internal/modkit/repokit"
	"socialfeed/internal/services/engagement/domain"
	"socialfeed/internal/services/engagement/repo"
	"socialfeed/internal/services/engagement/service"
)

// Ports exposed by the engagement module
type Ports struct {
	// Likes binds a resolver to the caller's transaction
	Likes repokit.Binder[domain.ResolverPort]
}

// Module implements modkit.Module
type Module struct {
	ports Ports
}

// New constructs the engagement module
func New(modkit.Deps) *Module {
	return &Module{ports: Ports{Likes: service.Binder(repo.NewPG())}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "engagement" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
