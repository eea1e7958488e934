package coinpaprika

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Numeric fields are pointers: the API omits or nulls values it does not
// know, and an absent value must not render as zero.

// Ticker is the market data for a single coin
type Ticker struct {
	Id                string           `json:"id"`
	Name              string           `json:"name"`
	Symbol            string           `json:"symbol"`
	Rank              *int64           `json:"rank,omitempty"`
	CirculatingSupply *float64         `json:"circulating_supply,omitempty"`
	TotalSupply       *float64         `json:"total_supply,omitempty"`
	MaxSupply         *float64         `json:"max_supply,omitempty"`
	LastUpdated       Timestamp        `json:"last_updated,omitempty"`
	Quotes            map[string]Quote `json:"quotes,omitempty"`
}

// Quote is the price data for a ticker or market in one currency
type Quote struct {
	Price            *float64 `json:"price,omitempty"`
	Volume24h        *float64 `json:"volume_24h,omitempty"`
	MarketCap        *float64 `json:"market_cap,omitempty"`
	PercentChange1h  *float64 `json:"percent_change_1h,omitempty"`
	PercentChange24h *float64 `json:"percent_change_24h,omitempty"`
	PercentChange7d  *float64 `json:"percent_change_7d,omitempty"`

	// Exchange quotes report volume under different keys
	AdjustedVolume24h *float64 `json:"adjusted_volume_24h,omitempty"`
	ReportedVolume24h *float64 `json:"reported_volume_24h,omitempty"`
}

// Coin is the descriptive data for a coin
type Coin struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Rank        *int64 `json:"rank,omitempty"`
	Description string `json:"description,omitempty"`
	Links       Links  `json:"links,omitempty"`
}

// Links for a coin or exchange
type Links struct {
	Website  []string `json:"website,omitempty"`
	Explorer []string `json:"explorer,omitempty"`
}

// Market is a trading pair for a coin on an exchange
type Market struct {
	ExchangeId   string           `json:"exchange_id"`
	ExchangeName string           `json:"exchange_name"`
	Pair         string           `json:"pair"`
	Quotes       map[string]Quote `json:"quotes,omitempty"`
}

// Exchange is a cryptocurrency exchange
type Exchange struct {
	Id     string           `json:"id"`
	Name   string           `json:"name"`
	Active *bool            `json:"active,omitempty"`
	Links  Links            `json:"links,omitempty"`
	Quotes map[string]Quote `json:"quotes,omitempty"`
}

// Event is a scheduled or past event for a coin
type Event struct {
	Id          string `json:"id"`
	Date        string `json:"date,omitempty"`
	DateTo      string `json:"date_to,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Global is the market overview across all coins
type Global struct {
	MarketCapUSD               *float64  `json:"market_cap_usd,omitempty"`
	Volume24hUSD               *float64  `json:"volume_24h_usd,omitempty"`
	BitcoinDominancePercentage *float64  `json:"bitcoin_dominance_percentage,omitempty"`
	CryptocurrenciesNumber     *int64    `json:"cryptocurrencies_number,omitempty"`
	ExchangesNumber            *int64    `json:"exchanges_number,omitempty"`
	MarketCapAthValue          *float64  `json:"market_cap_ath_value,omitempty"`
	MarketCapChange24h         *float64  `json:"market_cap_change_24h,omitempty"`
	Volume24hChange24h         *float64  `json:"volume_24h_change_24h,omitempty"`
	LastUpdated                Timestamp `json:"last_updated,omitempty"`
}

// Timestamp is returned either as an RFC3339 string or as unix seconds
type Timestamp string

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Quote currency used in all output
	USD = "USD"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// USD returns the dollar quote, or an empty quote
func (t Ticker) USD() Quote {
	return t.Quotes[USD]
}

// USD returns the dollar quote, or an empty quote
func (m Market) USD() Quote {
	return m.Quotes[USD]
}

// Volume24h returns the 24h dollar volume under whichever key is present
func (e Exchange) Volume24h() *float64 {
	q := e.Quotes[USD]
	switch {
	case q.Volume24h != nil:
		return q.Volume24h
	case q.AdjustedVolume24h != nil:
		return q.AdjustedVolume24h
	default:
		return q.ReportedVolume24h
	}
}

// UnmarshalJSON accepts a string, a number of unix seconds or null.
// A number which cannot be read leaves the timestamp empty.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Timestamp(s)
	default:
		secs, err := strconv.ParseFloat(string(data), 64)
		if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
			*t = ""
		} else {
			*t = Timestamp(time.Unix(int64(secs), 0).UTC().Format(time.RFC3339))
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (v Ticker) String() string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

func (v Global) String() string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}
