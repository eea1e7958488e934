package coinpaprika

import (
	"fmt"
	"math"
	"net/url"
)

///////////////////////////////////////////////////////////////////////////////
// REQUEST TYPES

// CoinRequest defines the input for tools which act on a single coin
type CoinRequest struct {
	CoinId string `json:"coinId" jsonschema:"Coin ID (e.g., btc-bitcoin, eth-ethereum)"`
}

// TopCoinsRequest defines the input for the top coins query
type TopCoinsRequest struct {
	Limit float64 `json:"limit,omitempty" jsonschema:"Number of coins to return (default: 10, max: 100)"`
	Sort  string  `json:"sort,omitempty" jsonschema:"Sort by: rank, id, name, symbol, price_usd, price_btc, volume_24h_usd, market_cap_usd, circulating_supply, total_supply, max_supply, percent_change_1h, percent_change_24h, percent_change_7d"`
}

// SearchRequest defines the input for the coin search
type SearchRequest struct {
	Query string  `json:"query" jsonschema:"Search term (name or symbol)"`
	Limit float64 `json:"limit,omitempty" jsonschema:"Number of results to return (default: 10)"`
}

// EmptyRequest is the input for tools without arguments
type EmptyRequest struct{}

// TickersRequest defines the query parameters for the tickers endpoint
type TickersRequest struct {
	Limit uint
	Sort  string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultLimit    = 10
	maxTopCoinLimit = 100
	defaultSort     = "rank"
)

///////////////////////////////////////////////////////////////////////////////
// METHODS

// Values converts TickersRequest to URL query parameters
func (r *TickersRequest) Values() url.Values {
	result := url.Values{}
	if r.Limit > 0 {
		result.Set("limit", fmt.Sprint(r.Limit))
	}
	if r.Sort != "" {
		result.Set("sort", r.Sort)
	}
	return result
}

// Tickers returns the upstream request, with the limit clamped to
// [1,100] and defaults applied
func (r *TopCoinsRequest) Tickers() *TickersRequest {
	sort := r.Sort
	if sort == "" {
		sort = defaultSort
	}
	return &TickersRequest{
		Limit: uint(clampLimit(r.Limit, defaultLimit, maxTopCoinLimit)),
		Sort:  sort,
	}
}

// Max returns the maximum number of search results, at least one
func (r *SearchRequest) Max() int {
	return clampLimit(r.Limit, defaultLimit, 0)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// clampLimit returns def when v is unset, otherwise v truncated and clamped
// to [1,max]. A max of zero means no upper bound.
func clampLimit(v float64, def, max int) int {
	switch {
	case v == 0:
		return def
	case v < 1:
		return 1
	case max > 0 && v > float64(max):
		return max
	case v > math.MaxInt32:
		return math.MaxInt32
	default:
		return int(v)
	}
}
