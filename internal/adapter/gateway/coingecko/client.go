// Package coingecko fetches category listings and per-coin detail from the
// public CoinGecko API. Calls are meant to be strictly sequential; the sync
// usecase paces them, this client only does the HTTP and the mapping.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Bakuzaci/payattention-sol/internal/domain/tokens"
	"github.com/Bakuzaci/payattention-sol/internal/observability"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

type Client struct {
	base string
	hc   *http.Client
}

func New() *Client { return NewWithBaseURL(DefaultBaseURL) }

func NewWithBaseURL(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext:     (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
				MaxIdleConns:    2, // sequential use only
				IdleConnTimeout: 90 * time.Second,
			},
		},
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.hc.Timeout = d
	}
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("coingecko: http %d: %s", res.StatusCode, string(b))
	}
	return json.NewDecoder(res.Body).Decode(v)
}

// marketRow mirrors one element of /coins/markets. Numeric fields are
// nullable upstream, hence the pointers.
type marketRow struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Symbol         string   `json:"symbol"`
	Image          string   `json:"image"`
	MarketCap      *float64 `json:"market_cap"`
	TotalVolume    *float64 `json:"total_volume"`
	CurrentPrice   *float64 `json:"current_price"`
	PriceChange24h *float64 `json:"price_change_percentage_24h"`
}

// Listings fetches one page of up to limit market rows for a category,
// ordered by market cap upstream.
func (c *Client) Listings(ctx context.Context, cat tokens.Category, limit int) ([]tokens.Listing, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("category", string(cat))
	q.Set("order", "market_cap_desc")
	q.Set("per_page", fmt.Sprint(limit))
	q.Set("page", "1")

	var rows []marketRow
	if err := c.getJSON(ctx, "/coins/markets", q, &rows); err != nil {
		observability.RecordUpstreamRequest("markets", "error")
		return nil, err
	}
	observability.RecordUpstreamRequest("markets", "ok")

	out := make([]tokens.Listing, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" {
			continue
		}
		name := r.Name
		if name == "" {
			name = "Unknown"
		}
		sym := r.Symbol
		if sym == "" {
			sym = "???"
		}
		out = append(out, tokens.Listing{
			ExternalID:     r.ID,
			Name:           name,
			Symbol:         strings.ToUpper(sym),
			Image:          optional(r.Image),
			MarketCap:      deref(r.MarketCap),
			Volume24h:      deref(r.TotalVolume),
			Price:          deref(r.CurrentPrice),
			PriceChange24h: deref(r.PriceChange24h),
		})
	}
	return out, nil
}

type coinDetail struct {
	Platforms map[string]string `json:"platforms"`
	Links     struct {
		TwitterScreenName string   `json:"twitter_screen_name"`
		TelegramChannel   string   `json:"telegram_channel_identifier"`
		Homepage          []string `json:"homepage"`
	} `json:"links"`
}

// Detail fetches extended metadata for one coin: Solana address, twitter,
// telegram and the first non-empty homepage, formatted as full URLs.
func (c *Client) Detail(ctx context.Context, externalID string) (*tokens.Detail, error) {
	q := url.Values{}
	q.Set("localization", "false")
	q.Set("tickers", "false")
	q.Set("market_data", "false")
	q.Set("community_data", "false")
	q.Set("developer_data", "false")

	var d coinDetail
	if err := c.getJSON(ctx, "/coins/"+url.PathEscape(externalID), q, &d); err != nil {
		observability.RecordUpstreamRequest("detail", "error")
		return nil, err
	}
	observability.RecordUpstreamRequest("detail", "ok")

	det := &tokens.Detail{Address: optional(d.Platforms["solana"])}
	if h := d.Links.TwitterScreenName; h != "" {
		det.Twitter = optional("https://twitter.com/" + h)
	}
	if ch := d.Links.TelegramChannel; ch != "" {
		det.Telegram = optional("https://t.me/" + ch)
	}
	for _, site := range d.Links.Homepage {
		if site != "" {
			det.Website = optional(site)
			break
		}
	}
	return det, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
