// Package syncuc holds the reconciliation job: pull the configured CoinGecko
// categories into the store, then backfill social links for the top tokens.
package syncuc

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Bakuzaci/payattention-sol/internal/domain/tokens"
	"github.com/Bakuzaci/payattention-sol/internal/observability"
)

const (
	DefaultListingLimit = 100
	DefaultSocialLimit  = 30
)

// Pacer spaces sequential upstream calls (see internal/pkg/pace).
type Pacer interface {
	Wait(ctx context.Context) error
}

// Reconciler runs one full sync: for each category in enum order, fetch up to
// ListingLimit listings and upsert them by external id, then fetch detail for
// up to SocialLimit stored tokens that still lack a twitter link.
//
// Runs are serialized by an internal mutex: a manual trigger that lands while
// the scheduled job is mid-flight blocks until that run finishes, then runs.
// Upstream failures never abort the job; the affected category or token is
// skipped and the run continues.
type Reconciler struct {
	Repo    tokens.Repo
	Fetcher tokens.Fetcher
	Pace    Pacer

	ListingLimit int // 0 => DefaultListingLimit
	SocialLimit  int // 0 => DefaultSocialLimit
	Logger       *slog.Logger

	mu sync.Mutex
}

type Summary struct {
	Added      int
	Updated    int
	Backfilled int
}

func (r *Reconciler) log() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Run performs one synchronization pass. It only ever fails by doing less:
// everything that went wrong is in the logs, the returned summary counts what
// went through.
func (r *Reconciler) Run(ctx context.Context) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	l := r.log()
	l.Info("sync start")

	var sum Summary
	limit := r.ListingLimit
	if limit <= 0 {
		limit = DefaultListingLimit
	}

	for _, cat := range tokens.Categories() {
		if err := r.Pace.Wait(ctx); err != nil {
			l.Warn("sync aborted", "err", err)
			observability.RecordSyncRun("error", time.Since(start).Seconds(), sum.Added, sum.Updated, sum.Backfilled)
			return sum
		}
		listings, err := r.Fetcher.Listings(ctx, cat, limit)
		if err != nil {
			l.Warn("category fetch failed", "category", cat, "err", err)
			continue
		}
		added, updated, err := r.Repo.SyncCategory(ctx, cat, listings)
		if err != nil {
			l.Warn("category sync failed", "category", cat, "err", err)
			continue
		}
		sum.Added += added
		sum.Updated += updated
		l.Info("category synced", "category", cat, "fetched", len(listings), "added", added, "updated", updated)
	}

	sum.Backfilled = r.backfillSocial(ctx)

	l.Info("sync done",
		"added", sum.Added, "updated", sum.Updated, "backfilled", sum.Backfilled,
		"took", time.Since(start).Truncate(time.Millisecond))
	observability.RecordSyncRun("ok", time.Since(start).Seconds(), sum.Added, sum.Updated, sum.Backfilled)
	return sum
}

// backfillSocial picks the highest-capped tokens with no twitter link yet and
// fills address plus social URLs from the detail endpoint. Results are applied
// in one batch at the end; a token whose detail fetch fails is left unchanged
// and will be retried on the next run.
func (r *Reconciler) backfillSocial(ctx context.Context) int {
	l := r.log()
	limit := r.SocialLimit
	if limit <= 0 {
		limit = DefaultSocialLimit
	}

	pending, err := r.Repo.MissingSocial(ctx, limit)
	if err != nil {
		l.Warn("social candidates query failed", "err", err)
		return 0
	}

	var updates []tokens.SocialUpdate
	for _, t := range pending {
		if err := r.Pace.Wait(ctx); err != nil {
			l.Warn("social backfill aborted", "err", err)
			break
		}
		det, err := r.Fetcher.Detail(ctx, t.ExternalID)
		if err != nil {
			l.Warn("detail fetch failed", "token", t.ExternalID, "err", err)
			continue
		}
		if det == nil {
			continue
		}
		updates = append(updates, tokens.SocialUpdate{ExternalID: t.ExternalID, Detail: *det})
	}

	n, err := r.Repo.ApplySocial(ctx, updates)
	if err != nil {
		l.Warn("social apply failed", "err", err)
		return 0
	}
	return n
}
