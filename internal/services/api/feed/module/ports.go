package module

import feeddomain "socialfeed/internal/services/api/feed/domain"

// Ports exposed by the feed module
type Ports struct {
	Feed feeddomain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
