package tokens

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no token has the requested external id.
var ErrNotFound = errors.New("token not found")

type ListFilter struct {
	Category *Category // nil = all categories
	Sort     SortKey
	Limit    int
	Offset   int
}

type CategoryStats struct {
	Count          int
	TotalMarketCap float64
	TotalVolume24h float64
}

// SocialUpdate carries one backfill result to be applied to a stored token.
type SocialUpdate struct {
	ExternalID string
	Detail     Detail
}

// Repo is the write side used by the reconciler. Each call is one transaction.
type Repo interface {
	// SyncCategory upserts a fetched batch for one category: market fields of
	// existing rows are overwritten (social fields untouched), unknown ids are
	// inserted. Returns how many rows were added and updated.
	SyncCategory(ctx context.Context, cat Category, listings []Listing) (added, updated int, err error)
	// MissingSocial returns up to limit tokens with no twitter link yet,
	// highest market cap first.
	MissingSocial(ctx context.Context, limit int) ([]Token, error)
	// ApplySocial sets address and social links for the given tokens.
	ApplySocial(ctx context.Context, updates []SocialUpdate) (int, error)
}

// QueryRepo is the read side behind the HTTP API.
type QueryRepo interface {
	List(ctx context.Context, f ListFilter) ([]Token, error)
	Get(ctx context.Context, externalID string) (Token, error)
	StatsByCategory(ctx context.Context, cat Category) (CategoryStats, error)
}
