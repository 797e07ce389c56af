package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Bakuzaci/payattention-sol/internal/domain/tokens"
)

// TokensRepo persists token snapshots in the tokens table. It implements
// both tokens.Repo (sync side) and tokens.QueryRepo (read side).
type TokensRepo struct {
	db *sql.DB
}

func NewTokensRepo(db *sql.DB) *TokensRepo { return &TokensRepo{db: db} }

const tokenColumns = `external_id, address, name, symbol, image, category,
	market_cap, volume_24h, price, price_change_24h,
	twitter, telegram, website, created_at, updated_at`

// SyncCategory reconciles one fetched category batch in a single transaction.
// Existing rows (matched by external_id) get their market fields, image and
// updated_at overwritten; social fields and address stay as they are. Unknown
// ids are inserted under cat. Rows that vanished upstream are left alone.
func (r *TokensRepo) SyncCategory(ctx context.Context, cat tokens.Category, listings []tokens.Listing) (added, updated int, err error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const updSQL = `
		UPDATE tokens
		SET market_cap = $2, volume_24h = $3, price = $4, price_change_24h = $5,
		    image = $6, updated_at = now()
		WHERE external_id = $1`
	const insSQL = `
		INSERT INTO tokens
			(external_id, name, symbol, image, category,
			 market_cap, volume_24h, price, price_change_24h)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	for _, l := range listings {
		if l.ExternalID == "" {
			continue
		}
		res, uerr := tx.ExecContext(ctx, updSQL,
			l.ExternalID, l.MarketCap, l.Volume24h, l.Price, l.PriceChange24h, l.Image)
		if uerr != nil {
			err = fmt.Errorf("tokens.SyncCategory update %s: %w", l.ExternalID, uerr)
			return 0, 0, err
		}
		n, _ := res.RowsAffected()
		if n > 0 {
			updated++
			continue
		}
		if _, ierr := tx.ExecContext(ctx, insSQL,
			l.ExternalID, l.Name, l.Symbol, l.Image, string(cat),
			l.MarketCap, l.Volume24h, l.Price, l.PriceChange24h); ierr != nil {
			err = fmt.Errorf("tokens.SyncCategory insert %s: %w", l.ExternalID, ierr)
			return 0, 0, err
		}
		added++
	}
	return added, updated, nil
}

// MissingSocial returns up to limit tokens that still have no twitter link,
// highest market cap first. external_id breaks ties so the order is stable.
func (r *TokensRepo) MissingSocial(ctx context.Context, limit int) ([]tokens.Token, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+tokenColumns+`
		FROM tokens
		WHERE twitter IS NULL
		ORDER BY market_cap DESC, external_id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("tokens.MissingSocial: %w", err)
	}
	defer rows.Close()
	return scanTokens(rows)
}

// ApplySocial writes the backfill results in one transaction.
func (r *TokensRepo) ApplySocial(ctx context.Context, updates []tokens.SocialUpdate) (n int, err error) {
	if len(updates) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const q = `
		UPDATE tokens
		SET address = $2, twitter = $3, telegram = $4, website = $5, updated_at = now()
		WHERE external_id = $1`
	for _, u := range updates {
		res, uerr := tx.ExecContext(ctx, q,
			u.ExternalID, u.Detail.Address, u.Detail.Twitter, u.Detail.Telegram, u.Detail.Website)
		if uerr != nil {
			err = fmt.Errorf("tokens.ApplySocial %s: %w", u.ExternalID, uerr)
			return 0, err
		}
		if affected, _ := res.RowsAffected(); affected > 0 {
			n++
		}
	}
	return n, nil
}

// sortColumn maps a SortKey to its column. Keys are a closed enum, but keep
// the whitelist anyway since the value ends up in the query text.
func sortColumn(k tokens.SortKey) string {
	switch k {
	case tokens.SortVolume24h:
		return "volume_24h"
	case tokens.SortPriceChange24h:
		return "price_change_24h"
	default:
		return "market_cap"
	}
}

func (r *TokensRepo) List(ctx context.Context, f tokens.ListFilter) ([]tokens.Token, error) {
	limit := f.Limit
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	q := `SELECT ` + tokenColumns + ` FROM tokens`
	args := []any{}
	if f.Category != nil {
		q += ` WHERE category = $1`
		args = append(args, string(*f.Category))
	}
	q += fmt.Sprintf(` ORDER BY %s DESC, external_id ASC LIMIT %d OFFSET %d`,
		sortColumn(f.Sort), limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("tokens.List: %w", err)
	}
	defer rows.Close()
	return scanTokens(rows)
}

func (r *TokensRepo) Get(ctx context.Context, externalID string) (tokens.Token, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tokenColumns+` FROM tokens WHERE external_id = $1`, externalID)
	t, err := scanToken(row)
	if err == sql.ErrNoRows {
		return tokens.Token{}, tokens.ErrNotFound
	}
	if err != nil {
		return tokens.Token{}, fmt.Errorf("tokens.Get: %w", err)
	}
	return t, nil
}

func (r *TokensRepo) StatsByCategory(ctx context.Context, cat tokens.Category) (tokens.CategoryStats, error) {
	var s tokens.CategoryStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(market_cap), 0), COALESCE(SUM(volume_24h), 0)
		FROM tokens
		WHERE category = $1`, string(cat)).
		Scan(&s.Count, &s.TotalMarketCap, &s.TotalVolume24h)
	if err != nil {
		return tokens.CategoryStats{}, fmt.Errorf("tokens.StatsByCategory: %w", err)
	}
	return s, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanToken(row scannable) (tokens.Token, error) {
	var t tokens.Token
	var cat string
	err := row.Scan(
		&t.ExternalID, &t.Address, &t.Name, &t.Symbol, &t.Image, &cat,
		&t.MarketCap, &t.Volume24h, &t.Price, &t.PriceChange24h,
		&t.Twitter, &t.Telegram, &t.Website, &t.CreatedAt, &t.UpdatedAt)
	t.Category = tokens.Category(cat)
	return t, err
}

func scanTokens(rows *sql.Rows) ([]tokens.Token, error) {
	var out []tokens.Token
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
