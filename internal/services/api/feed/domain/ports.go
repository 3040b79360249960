package domain

import "context"

// ServicePort is what transports and other modules call
type ServicePort interface {
	// Home is the viewer's follow feed; anonymous viewers are unauthorized
	Home(ctx context.Context, v Viewer, q FeedQuery) (Page, error)
	// Explore is every post; the viewer is optional and only drives the liked overlay
	Explore(ctx context.Context, v Viewer, q FeedQuery) (Page, error)
}
