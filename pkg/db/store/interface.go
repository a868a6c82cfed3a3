package store

import (
	"context"
	"time"
)

// DefaultCount is the listing cap callers use when they have no override.
const DefaultCount = 10

// PaperSummary is the listing shape shared by every paper query. The Pid
// stays valid for follow-up lookups (GetLikes, GetPaperTags) so listings
// can be enriched after the fact.
type PaperSummary struct {
	Pid         int
	Username    string
	Title       string
	BeginTime   time.Time
	Description string
}

// TagCount pairs a tagname with the number of papers carrying it.
type TagCount struct {
	Tagname    string
	PaperCount int
}

// TagPairCount counts papers carrying two tags together. First is always
// the lexically smaller tagname.
type TagPairCount struct {
	First      string
	Second     string
	PaperCount int
}

// PaperStore defines the interface for the paper platform's data layer.
// Write operations run in a single transaction each and leave the store
// untouched on failure; read operations never mutate state.
type PaperStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Reset(ctx context.Context) error
	Health(ctx context.Context) error

	// User operations
	Signup(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error

	// Paper operations
	AddPaper(ctx context.Context, username, title, description, text string, tags []string) (int, error)
	DeletePaper(ctx context.Context, pid int) error
	GetTimeline(ctx context.Context, username string, count int) ([]PaperSummary, error)
	GetTimelineAll(ctx context.Context, count int) ([]PaperSummary, error)
	GetPapersByTag(ctx context.Context, tag string, count int) ([]PaperSummary, error)
	GetPapersByKeyword(ctx context.Context, keyword string, count int) ([]PaperSummary, error)
	GetPaperTags(ctx context.Context, pid int) ([]string, error)

	// Like operations
	LikePaper(ctx context.Context, username string, pid int) error
	UnlikePaper(ctx context.Context, username string, pid int) error
	GetLikes(ctx context.Context, pid int) (int, error)
	GetPapersByLiked(ctx context.Context, username string, count int) ([]PaperSummary, error)
	GetMostPopularPapers(ctx context.Context, since time.Time, count int) ([]PaperSummary, error)
	GetRecommendedPapers(ctx context.Context, username string, count int) ([]PaperSummary, error)

	// Statistics
	GetMostActiveUsers(ctx context.Context, count int) ([]string, error)
	GetMostPopularTags(ctx context.Context, count int) ([]TagCount, error)
	GetMostPopularTagPairs(ctx context.Context, count int) ([]TagPairCount, error)
	GetNumberPapersUser(ctx context.Context, username string) (int, error)
	GetNumberLikedUser(ctx context.Context, username string) (int, error)
	GetNumberTagsUser(ctx context.Context, username string) (int, error)
}
