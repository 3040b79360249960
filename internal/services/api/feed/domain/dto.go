// Package domain holds feed types shared by the repo, service and transport
package domain

import (
	"time"

	"socialfeed/internal/core/cursor"
	"socialfeed/internal/core/viewer"
	perr "socialfeed/internal/platform/errors"
)

const (
	// DefaultLimit is the page size when the caller sends none
	DefaultLimit = 10
	// MaxLimit is the largest page size served; larger values are rejected, not clamped
	MaxLimit = 50
)

// InvalidLimit is the error for any limit outside 1..MaxLimit, including non-integers
func InvalidLimit() error {
	return perr.Validationf("limit", "Invalid limit (must be between 1 and %d)", MaxLimit)
}

// Kind names a feed; the only difference between kinds is the candidate predicate
type Kind string

const (
	// KindHome is posts by accounts the viewer follows
	KindHome Kind = "home"
	// KindExplore is every post
	KindExplore Kind = "explore"
)

// FeedQuery is the caller facing page request
type FeedQuery struct {
	Limit  int    `query:"limit" validate:"min=1,max=50" example:"10"`
	Cursor string `query:"cursor" validate:"omitempty,max=512" example:"eyJpZCI6NDIsImNyZWF0ZWRBdCI6IjIwMjQtMDEtMDFUMDA6MDA6MDBaIn0"`
}

// DefaultQuery is a first page of DefaultLimit posts
func DefaultQuery() FeedQuery { return FeedQuery{Limit: DefaultLimit} }

// PageQuery is what the query engine needs for one over-fetched page
type PageQuery struct {
	Kind Kind
	// ViewerID is required for KindHome and ignored otherwise
	ViewerID int64
	// After is a strict ordering boundary; nil means the newest post
	After *cursor.Cursor
	// Fetch is limit+1
	Fetch int
}

// AuthorSummary is the public face of a post author
type AuthorSummary struct {
	ID          int64   `json:"id" example:"7"`
	Username    string  `json:"username" example:"ada"`
	DisplayName *string `json:"display_name" example:"Ada L."`
}

// Post is one row of the ordered post query
type Post struct {
	ID         int64         `json:"id" example:"42"`
	AuthorID   int64         `json:"author_id" example:"7"`
	Content    string        `json:"content" example:"hello"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Author     AuthorSummary `json:"author"`
	LikesCount int64         `json:"likes_count" example:"3"`
}

// FeedPost is a Post with the viewer overlay
type FeedPost struct {
	Post
	IsLikedByCurrentUser bool `json:"is_liked_by_current_user"`
}

// Page is one page of a feed. NextCursor is set only when HasMore is true
type Page struct {
	Posts      []FeedPost `json:"posts"`
	NextCursor *string    `json:"next_cursor"`
	HasMore    bool       `json:"has_more"`
}

// EmptyPage is the page for a feed with nothing left
func EmptyPage() Page { return Page{Posts: []FeedPost{}} }

// Viewer aliases viewer.Viewer so ports read naturally
type Viewer = viewer.Viewer
