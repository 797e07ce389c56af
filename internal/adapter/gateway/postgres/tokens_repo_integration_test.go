package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bakuzaci/payattention-sol/internal/adapter/gateway/postgres"
	dm "github.com/Bakuzaci/payattention-sol/internal/domain/tokens"
	"github.com/Bakuzaci/payattention-sol/internal/infra/store"
)

func openRepo(t *testing.T) *postgres.TokensRepo {
	t.Helper()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set; integration test skipped")
	}
	db, err := store.OpenPostgres(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.EnsureSchema(context.Background(), db))
	return postgres.NewTokensRepo(db)
}

func str(s string) *string { return &s }

func TestTokensRepo_SyncCategoryUpsert(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	// unique suffix so reruns against the same database still insert
	id := fmt.Sprintf("it-foo-%d", time.Now().UnixNano())
	first := []dm.Listing{{
		ExternalID: id, Name: "Foo", Symbol: "FOO",
		Image: str("https://img/foo.png"), MarketCap: 1000, Volume24h: 500, Price: 0.01, PriceChange24h: 5,
	}}

	added, updated, err := repo.SyncCategory(ctx, dm.CategoryPumpFun, first)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 0, updated)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, dm.CategoryPumpFun, got.Category)
	assert.Equal(t, "FOO", got.Symbol)
	assert.Equal(t, 1000.0, got.MarketCap)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
	created := got.CreatedAt

	// same token reappears with fresh market data: update, never a duplicate
	second := []dm.Listing{{ExternalID: id, Name: "Renamed", Symbol: "XXX", MarketCap: 2000}}
	added, updated, err = repo.SyncCategory(ctx, dm.CategoryPumpFun, second)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, updated)

	got, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, got.MarketCap)
	assert.Equal(t, "FOO", got.Symbol, "identity fields are not rewritten on update")
	assert.Equal(t, created.Unix(), got.CreatedAt.Unix())
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestTokensRepo_GetNotFound(t *testing.T) {
	repo := openRepo(t)
	_, err := repo.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, dm.ErrNotFound)
}

func TestTokensRepo_ListSortedDescending(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	suf := time.Now().UnixNano()
	batch := []dm.Listing{
		{ExternalID: fmt.Sprintf("it-a-%d", suf), Name: "A", Symbol: "A", MarketCap: 10, Volume24h: 300},
		{ExternalID: fmt.Sprintf("it-b-%d", suf), Name: "B", Symbol: "B", MarketCap: 30, Volume24h: 100},
		{ExternalID: fmt.Sprintf("it-c-%d", suf), Name: "C", Symbol: "C", MarketCap: 20, Volume24h: 200},
	}
	_, _, err := repo.SyncCategory(ctx, dm.CategoryAIMeme, batch)
	require.NoError(t, err)

	cat := dm.CategoryAIMeme
	list, err := repo.List(ctx, dm.ListFilter{Category: &cat, Sort: dm.SortMarketCap, Limit: 200})
	require.NoError(t, err)
	require.NotEmpty(t, list)
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].MarketCap, list[i].MarketCap)
	}

	list, err = repo.List(ctx, dm.ListFilter{Category: &cat, Sort: dm.SortVolume24h, Limit: 200})
	require.NoError(t, err)
	for i := 1; i < len(list); i++ {
		assert.GreaterOrEqual(t, list[i-1].Volume24h, list[i].Volume24h)
	}
}

func TestTokensRepo_SocialBackfillRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	id := fmt.Sprintf("it-social-%d", time.Now().UnixNano())
	_, _, err := repo.SyncCategory(ctx, dm.CategorySolanaMeme, []dm.Listing{
		{ExternalID: id, Name: "S", Symbol: "S", MarketCap: 1e12}, // top of the missing list
	})
	require.NoError(t, err)

	missing, err := repo.MissingSocial(ctx, 30)
	require.NoError(t, err)
	require.NotEmpty(t, missing)
	assert.Equal(t, id, missing[0].ExternalID, "highest market cap first")

	n, err := repo.ApplySocial(ctx, []dm.SocialUpdate{{
		ExternalID: id,
		Detail: dm.Detail{
			Address: str("So1abc"),
			Twitter: str("https://twitter.com/s"),
		},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Twitter)
	assert.Equal(t, "https://twitter.com/s", *got.Twitter)
	require.NotNil(t, got.Address)
	assert.Equal(t, "So1abc", *got.Address)
	assert.Nil(t, got.Telegram)

	// once twitter is set the token drops out of the backfill candidates
	missing, err = repo.MissingSocial(ctx, 200)
	require.NoError(t, err)
	for _, m := range missing {
		assert.NotEqual(t, id, m.ExternalID)
	}
}

func TestTokensRepo_StatsByCategory(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	suf := time.Now().UnixNano()
	_, _, err := repo.SyncCategory(ctx, dm.CategoryPumpFun, []dm.Listing{
		{ExternalID: fmt.Sprintf("it-s1-%d", suf), Name: "S1", Symbol: "S1", MarketCap: 100, Volume24h: 10},
		{ExternalID: fmt.Sprintf("it-s2-%d", suf), Name: "S2", Symbol: "S2", MarketCap: 200, Volume24h: 20},
	})
	require.NoError(t, err)

	stats, err := repo.StatsByCategory(ctx, dm.CategoryPumpFun)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Count, 2)
	assert.GreaterOrEqual(t, stats.TotalMarketCap, 300.0)
	assert.GreaterOrEqual(t, stats.TotalVolume24h, 30.0)
}
