package tokens

import "time"

// Category is one of the CoinGecko category slugs the service tracks.
// The set is closed: anything else fails ParseCategory.
type Category string

const (
	CategoryAIMeme     Category = "ai-meme-coins"
	CategoryPumpFun    Category = "pump-fun"
	CategorySolanaMeme Category = "solana-meme-coins"
)

// Categories returns the tracked categories in their configured order.
// Sync walks them in this order and /api/categories reports them in this order.
func Categories() []Category {
	return []Category{CategoryAIMeme, CategoryPumpFun, CategorySolanaMeme}
}

func (c Category) DisplayName() string {
	switch c {
	case CategoryAIMeme:
		return "AI Agents"
	case CategoryPumpFun:
		return "PumpFun"
	case CategorySolanaMeme:
		return "Solana Memes"
	}
	return string(c)
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// SortKey selects the column a listing query orders by (always descending).
type SortKey string

const (
	SortMarketCap      SortKey = "market_cap"
	SortVolume24h      SortKey = "volume_24h"
	SortPriceChange24h SortKey = "price_change_24h"
)

// ParseSortKey maps a query value to a sort key; empty means the default.
func ParseSortKey(s string) (SortKey, bool) {
	switch s {
	case "", string(SortMarketCap):
		return SortMarketCap, true
	case string(SortVolume24h):
		return SortVolume24h, true
	case string(SortPriceChange24h):
		return SortPriceChange24h, true
	}
	return "", false
}

// Token is the latest known state of one tracked token. ExternalID is the
// CoinGecko id and the sole upsert key; optional fields stay nil until the
// social backfill fills them.
type Token struct {
	ExternalID     string
	Address        *string // Solana address, when CoinGecko knows it
	Name           string
	Symbol         string // stored upper-case
	Image          *string
	Category       Category
	MarketCap      float64
	Volume24h      float64
	Price          float64
	PriceChange24h float64
	Twitter        *string
	Telegram       *string
	Website        *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
