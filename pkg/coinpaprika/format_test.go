package coinpaprika_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	// Packages
	coinpaprika "github.com/mutablelogic/go-paprika/pkg/coinpaprika"
	assert "github.com/stretchr/testify/assert"
)

func Test_format_001(t *testing.T) {
	assert := assert.New(t)

	// Absent fields render as N/A
	text := coinpaprika.FormatCoinPrice(nil, nil)
	assert.Contains(text, "📈 **N/A (N/A)**")
	assert.Contains(text, "**Current Price:** N/A")
	assert.Contains(text, "**Rank:** N/A")
	assert.Contains(text, "• 7d: N/A")
	assert.Contains(text, "• Explorer: N/A")
	assert.Contains(text, "*Last Updated: N/A*")
}

func Test_format_002(t *testing.T) {
	assert := assert.New(t)

	var markets []coinpaprika.Market
	for i := range 25 {
		markets = append(markets, coinpaprika.Market{ExchangeName: fmt.Sprint("Exchange ", i+1)})
	}
	text := coinpaprika.FormatMarkets("eth-ethereum", markets)
	assert.Contains(text, "**10. Exchange 10**")
	assert.NotContains(text, "**11.")
	assert.Equal(10, strings.Count(text, "💰 Price: N/A"))
}

func Test_format_003(t *testing.T) {
	assert := assert.New(t)

	var exchanges []coinpaprika.Exchange
	for i := range 20 {
		exchanges = append(exchanges, coinpaprika.Exchange{Name: fmt.Sprint("Exchange ", i+1)})
	}
	text := coinpaprika.FormatExchanges(exchanges)
	assert.True(strings.HasPrefix(text, "🏪 **Top Cryptocurrency Exchanges**"))
	assert.Contains(text, "**15. Exchange 15**")
	assert.NotContains(text, "**16.")
}

func Test_format_004(t *testing.T) {
	assert := assert.New(t)

	var tickers []coinpaprika.Ticker
	if err := json.Unmarshal([]byte(tickersAll), &tickers); !assert.NoError(err) {
		t.FailNow()
	}

	tests := []struct {
		query string
		max   int
		ids   []string
	}{
		{"btc", 10, []string{"btc-bitcoin", "wbtc-wrapped-bitcoin"}},
		{"BITCOIN", 10, []string{"btc-bitcoin", "wbtc-wrapped-bitcoin", "bch-bitcoin-cash"}},
		{"bitcoin", 1, []string{"btc-bitcoin"}},
		{"eth", 10, []string{"eth-ethereum", "usdt-tether"}},
		{"tether", 10, []string{"usdt-tether"}},
		{"dogecoin", 10, nil},
		{"", 3, []string{"btc-bitcoin", "eth-ethereum", "wbtc-wrapped-bitcoin"}},
	}
	for _, test := range tests {
		t.Run(test.query, func(t *testing.T) {
			var ids []string
			for _, ticker := range coinpaprika.Search(tickers, test.query, test.max) {
				ids = append(ids, ticker.Id)
			}
			assert.Equal(test.ids, ids)
		})
	}
}

func Test_format_005(t *testing.T) {
	assert := assert.New(t)

	// Unix seconds and strings are both accepted for timestamps
	var v struct {
		A coinpaprika.Timestamp `json:"a"`
		B coinpaprika.Timestamp `json:"b"`
		C coinpaprika.Timestamp `json:"c"`
		D coinpaprika.Timestamp `json:"d"`
		E coinpaprika.Timestamp `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a": 0, "b": "2024-01-01T00:00:00Z", "c": null, "d": 1.7e9, "e": 1700000000.5}`), &v)
	if assert.NoError(err) {
		assert.Equal(coinpaprika.Timestamp("1970-01-01T00:00:00Z"), v.A)
		assert.Equal(coinpaprika.Timestamp("2024-01-01T00:00:00Z"), v.B)
		assert.Empty(v.C)
		assert.Equal(coinpaprika.Timestamp("2023-11-14T22:13:20Z"), v.E)
		assert.Equal(coinpaprika.Timestamp("2023-11-14T22:13:20Z"), v.D)
	}

	// A ticker with a fractional timestamp still decodes
	var ticker coinpaprika.Ticker
	if assert.NoError(json.Unmarshal([]byte(`{"id": "btc-bitcoin", "last_updated": 1700000000.25}`), &ticker)) {
		assert.Equal("btc-bitcoin", ticker.Id)
		assert.Equal(coinpaprika.Timestamp("2023-11-14T22:13:20Z"), ticker.LastUpdated)
	}
}

func Test_format_006(t *testing.T) {
	assert := assert.New(t)

	text := coinpaprika.FormatEvents("btc-bitcoin", []coinpaprika.Event{{Name: "Launch"}})
	assert.Contains(text, "📅 **Events for BTC-BITCOIN**")
	assert.Contains(text, "📅 Date: TBD")
	assert.Contains(text, "📝 Description: No description")
	assert.Contains(text, "🔗 Link: N/A")
}
