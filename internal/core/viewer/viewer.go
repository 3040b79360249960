// Package viewer identifies who a feed is being built for
package viewer

import (
	"strconv"
	"strings"
)

// Viewer is either anonymous or a user id. The zero value is anonymous
type Viewer struct {
	id int64
}

// Anonymous returns the anonymous viewer
func Anonymous() Viewer { return Viewer{} }

// Of returns the viewer for user id; ids <= 0 are anonymous
func Of(id int64) Viewer {
	if id <= 0 {
		return Viewer{}
	}
	return Viewer{id: id}
}

// FromSubject parses a token subject into a viewer; anything that is not a positive integer is anonymous
func FromSubject(sub string) Viewer {
	id, err := strconv.ParseInt(strings.TrimSpace(sub), 10, 64)
	if err != nil {
		return Viewer{}
	}
	return Of(id)
}

// ID returns the user id and whether the viewer is known
func (v Viewer) ID() (int64, bool) { return v.id, v.id > 0 }

// IsAnonymous reports whether there is no user behind the request
func (v Viewer) IsAnonymous() bool { return v.id <= 0 }

// String is the user id, or "anonymous"
func (v Viewer) String() string {
	if v.IsAnonymous() {
		return "anonymous"
	}
	return strconv.FormatInt(v.id, 10)
}
