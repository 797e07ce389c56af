package tokens

import "context"

// Listing is one market row from the upstream category endpoint, already
// normalized: blank ids dropped, symbol upper-cased, null numerics zeroed.
type Listing struct {
	ExternalID     string
	Name           string
	Symbol         string
	Image          *string
	MarketCap      float64
	Volume24h      float64
	Price          float64
	PriceChange24h float64
}

// Detail is the extended metadata fetched per token: chain address and
// social links formatted as full URLs.
type Detail struct {
	Address  *string
	Twitter  *string
	Telegram *string
	Website  *string
}

type Fetcher interface {
	Listings(ctx context.Context, cat Category, limit int) ([]Listing, error)
	Detail(ctx context.Context, externalID string) (*Detail, error)
}
