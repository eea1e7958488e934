package coinpaprika

import (
	"fmt"
	"strings"

	// Packages
	format "github.com/mutablelogic/go-paprika/pkg/format"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	maxMarkets   = 10
	maxEvents    = 10
	maxExchanges = 15
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// FormatCoinPrice merges a ticker with the coin detail
func FormatCoinPrice(ticker *Ticker, coin *Coin) string {
	if ticker == nil {
		ticker = new(Ticker)
	}
	if coin == nil {
		coin = new(Coin)
	}
	quote := ticker.USD()
	rank := ticker.Rank
	if rank == nil {
		rank = coin.Rank
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 **%s (%s)**\n\n", format.Default(ticker.Name, format.Default(coin.Name, format.NA)), format.Default(ticker.Symbol, format.Default(coin.Symbol, format.NA)))
	fmt.Fprintf(&b, "**Current Price:** %s\n", usdPrice(quote.Price))
	fmt.Fprintf(&b, "**Rank:** %s\n", formatRank(rank))
	fmt.Fprintf(&b, "**Market Cap:** %s\n", format.Dollars(quote.MarketCap))
	fmt.Fprintf(&b, "**24h Volume:** %s\n\n", format.Dollars(quote.Volume24h))
	b.WriteString("**Price Changes:**\n")
	fmt.Fprintf(&b, "• 1h: %s\n", format.Percent(quote.PercentChange1h))
	fmt.Fprintf(&b, "• 24h: %s\n", format.Percent(quote.PercentChange24h))
	fmt.Fprintf(&b, "• 7d: %s\n\n", format.Percent(quote.PercentChange7d))
	b.WriteString("**Supply:**\n")
	fmt.Fprintf(&b, "• Circulating: %s\n", format.Number(ticker.CirculatingSupply))
	fmt.Fprintf(&b, "• Total: %s\n", format.Number(ticker.TotalSupply))
	fmt.Fprintf(&b, "• Max: %s\n\n", format.Number(ticker.MaxSupply))
	b.WriteString("**Links:**\n")
	fmt.Fprintf(&b, "• Website: %s\n", format.First(coin.Links.Website))
	fmt.Fprintf(&b, "• Explorer: %s\n\n", format.First(coin.Links.Explorer))
	fmt.Fprintf(&b, "*Last Updated: %s*", format.Default(string(ticker.LastUpdated), format.NA))
	return b.String()
}

// FormatTopCoins returns a ranked list of coins
func FormatTopCoins(tickers []Ticker) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Top %d Cryptocurrencies**\n\n", len(tickers))
	for i, coin := range tickers {
		quote := coin.USD()
		fmt.Fprintf(&b, "**%d. %s (%s)**\n", i+1, format.Default(coin.Name, format.NA), format.Default(coin.Symbol, format.NA))
		fmt.Fprintf(&b, "   💰 %s\n", usdPrice(quote.Price))
		fmt.Fprintf(&b, "   📈 24h: %s\n", format.Percent(quote.PercentChange24h))
		fmt.Fprintf(&b, "   🏆 Market Cap: %s\n\n", format.Dollars(quote.MarketCap))
	}
	return b.String()
}

// FormatMarkets returns the first markets for a coin
func FormatMarkets(coinId string, markets []Market) string {
	if len(markets) == 0 {
		return fmt.Sprintf("No markets found for %s", coinId)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏪 **Markets for %s**\n\n", strings.ToUpper(coinId))
	for i, market := range head(markets, maxMarkets) {
		quote := market.USD()
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, format.Default(market.ExchangeName, format.NA))
		fmt.Fprintf(&b, "   💰 Price: %s\n", usdPrice(quote.Price))
		fmt.Fprintf(&b, "   📊 Volume: %s\n", format.Dollars(quote.Volume24h))
		fmt.Fprintf(&b, "   🔗 Pair: %s\n\n", format.Default(market.Pair, format.NA))
	}
	return b.String()
}

// FormatExchanges returns the first exchanges
func FormatExchanges(exchanges []Exchange) string {
	var b strings.Builder
	b.WriteString("🏪 **Top Cryptocurrency Exchanges**\n\n")
	for i, exchange := range head(exchanges, maxExchanges) {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, format.Default(exchange.Name, format.NA))
		fmt.Fprintf(&b, "   📊 24h Volume: %s\n", format.Dollars(exchange.Volume24h()))
		fmt.Fprintf(&b, "   🌐 Website: %s\n\n", format.First(exchange.Links.Website))
	}
	return b.String()
}

// FormatGlobal returns the market overview. The all-time-high market cap
// is labelled as such: it is a dollar value, not a count of markets.
func FormatGlobal(global *Global) string {
	if global == nil {
		global = new(Global)
	}

	var b strings.Builder
	b.WriteString("🌍 **Global Cryptocurrency Market Statistics**\n\n")
	fmt.Fprintf(&b, "**Market Capitalization:** %s\n", usdNumber(global.MarketCapUSD))
	fmt.Fprintf(&b, "**24h Volume:** %s\n", usdNumber(global.Volume24hUSD))
	fmt.Fprintf(&b, "**Bitcoin Dominance:** %s\n", format.Percent(global.BitcoinDominancePercentage))
	fmt.Fprintf(&b, "**Active Cryptocurrencies:** %s\n", format.Integer(global.CryptocurrenciesNumber))
	fmt.Fprintf(&b, "**Active Exchanges:** %s\n", format.Integer(global.ExchangesNumber))
	fmt.Fprintf(&b, "**Market Cap ATH:** %s\n\n", format.Dollars(global.MarketCapAthValue))
	fmt.Fprintf(&b, "**Market Cap Change 24h:** %s\n", format.Percent(global.MarketCapChange24h))
	fmt.Fprintf(&b, "**Volume Change 24h:** %s\n\n", format.Percent(global.Volume24hChange24h))
	fmt.Fprintf(&b, "*Last Updated: %s*", format.Default(string(global.LastUpdated), format.NA))
	return b.String()
}

// FormatEvents returns the first events for a coin
func FormatEvents(coinId string, events []Event) string {
	if len(events) == 0 {
		return fmt.Sprintf("No events found for %s", coinId)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 **Events for %s**\n\n", strings.ToUpper(coinId))
	for i, event := range head(events, maxEvents) {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, format.Default(event.Name, format.NA))
		fmt.Fprintf(&b, "   📅 Date: %s\n", format.Default(event.Date, "TBD"))
		fmt.Fprintf(&b, "   📝 Description: %s\n", format.Default(event.Description, "No description"))
		fmt.Fprintf(&b, "   🔗 Link: %s\n\n", format.Default(event.Link, format.NA))
	}
	return b.String()
}

// FormatSearch returns the search matches for a query
func FormatSearch(query string, matches []Ticker) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No coins found for query: %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 **Search Results for %q**\n\n", query)
	for i, coin := range matches {
		fmt.Fprintf(&b, "**%d. %s (%s)**\n", i+1, format.Default(coin.Name, format.NA), format.Default(coin.Symbol, format.NA))
		fmt.Fprintf(&b, "   🆔 ID: %s\n", format.Default(coin.Id, format.NA))
		fmt.Fprintf(&b, "   💰 Price: %s\n", usdPrice(coin.USD().Price))
		fmt.Fprintf(&b, "   🏆 Rank: %s\n\n", formatRank(coin.Rank))
	}
	return b.String()
}

// Search returns at most max tickers whose name, symbol or id contains the
// query, ignoring case, in the order given
func Search(tickers []Ticker, query string, max int) []Ticker {
	query = strings.ToLower(query)
	result := make([]Ticker, 0, min(max, len(tickers)))
	for _, ticker := range tickers {
		if len(result) >= max {
			break
		}
		if strings.Contains(strings.ToLower(ticker.Name), query) ||
			strings.Contains(strings.ToLower(ticker.Symbol), query) ||
			strings.Contains(strings.ToLower(ticker.Id), query) {
			result = append(result, ticker)
		}
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func head[T any](v []T, n int) []T {
	if len(v) > n {
		return v[:n]
	}
	return v
}

func usdPrice(v *float64) string {
	if s := format.Price(v); s != format.NA {
		return "$" + s + " USD"
	}
	return format.NA
}

func usdNumber(v *float64) string {
	if s := format.Dollars(v); s != format.NA {
		return s + " USD"
	}
	return format.NA
}

func formatRank(v *int64) string {
	if v == nil {
		return format.NA
	}
	return fmt.Sprintf("#%d", *v)
}
