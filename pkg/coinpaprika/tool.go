package coinpaprika

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	paprika "github.com/mutablelogic/go-paprika"
	tool "github.com/mutablelogic/go-paprika/pkg/tool"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type coinPrice struct {
	client *Client
}

type topCoins struct {
	client *Client
}

type coinMarkets struct {
	client *Client
}

type exchanges struct {
	client *Client
}

type globalStats struct {
	client *Client
}

type coinEvents struct {
	client *Client
}

type searchCoins struct {
	client *Client
}

var _ tool.Tool = (*coinPrice)(nil)
var _ tool.Tool = (*topCoins)(nil)
var _ tool.Tool = (*coinMarkets)(nil)
var _ tool.Tool = (*exchanges)(nil)
var _ tool.Tool = (*globalStats)(nil)
var _ tool.Tool = (*coinEvents)(nil)
var _ tool.Tool = (*searchCoins)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the coinpaprika tools in the order they are published
func NewTools(opts ...client.ClientOpt) ([]tool.Tool, error) {
	// Create a client
	client, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return []tool.Tool{
		&coinPrice{client: client},
		&topCoins{client: client},
		&coinMarkets{client: client},
		&exchanges{client: client},
		&globalStats{client: client},
		&coinEvents{client: client},
		&searchCoins{client: client},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// COIN PRICE

func (*coinPrice) Name() string {
	return "get_coin_price"
}

func (*coinPrice) Description() string {
	return "Get current price and market data for a specific cryptocurrency"
}

func (*coinPrice) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[CoinRequest](nil)
}

// Run fetches the ticker and the coin detail concurrently
func (c *coinPrice) Run(ctx context.Context, input json.RawMessage) (string, error) {
	req, err := decode[CoinRequest](input)
	if err != nil {
		return "", err
	} else if req.CoinId == "" {
		return "", paprika.ErrBadParameter.With("coinId is required")
	}

	var ticker *Ticker
	var coin *Coin
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ticker, err = c.client.Ticker(ctx, req.CoinId)
		return err
	})
	g.Go(func() (err error) {
		coin, err = c.client.Coin(ctx, req.CoinId)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	return FormatCoinPrice(ticker, coin), nil
}

///////////////////////////////////////////////////////////////////////////////
// TOP COINS

func (*topCoins) Name() string {
	return "get_top_coins"
}

func (*topCoins) Description() string {
	return "Get top cryptocurrencies by market capitalization"
}

func (*topCoins) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[TopCoinsRequest](nil)
	if err != nil {
		return nil, err
	}
	if limit, ok := schema.Properties["limit"]; ok && limit != nil {
		limit.Default = json.RawMessage("10")
	}
	if sort, ok := schema.Properties["sort"]; ok && sort != nil {
		sort.Default = json.RawMessage(`"rank"`)
	}
	return schema, nil
}

// Run returns at most the requested number of tickers. The upstream is
// asked for the same limit, but may return more.
func (t *topCoins) Run(ctx context.Context, input json.RawMessage) (string, error) {
	req, err := decode[TopCoinsRequest](input)
	if err != nil {
		return "", err
	}

	params := req.Tickers()
	tickers, err := t.client.Tickers(ctx, params)
	if err != nil {
		return "", err
	}

	return FormatTopCoins(head(tickers, int(params.Limit))), nil
}

///////////////////////////////////////////////////////////////////////////////
// COIN MARKETS

func (*coinMarkets) Name() string {
	return "get_coin_markets"
}

func (*coinMarkets) Description() string {
	return "Get markets for a specific cryptocurrency"
}

func (*coinMarkets) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[CoinRequest](nil)
}

func (c *coinMarkets) Run(ctx context.Context, input json.RawMessage) (string, error) {
	req, err := decode[CoinRequest](input)
	if err != nil {
		return "", err
	} else if req.CoinId == "" {
		return "", paprika.ErrBadParameter.With("coinId is required")
	}

	markets, err := c.client.CoinMarkets(ctx, req.CoinId)
	if err != nil {
		return "", err
	}

	return FormatMarkets(req.CoinId, markets), nil
}

///////////////////////////////////////////////////////////////////////////////
// EXCHANGES

func (*exchanges) Name() string {
	return "get_exchanges"
}

func (*exchanges) Description() string {
	return "Get list of cryptocurrency exchanges"
}

func (*exchanges) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[EmptyRequest](nil)
}

func (e *exchanges) Run(ctx context.Context, _ json.RawMessage) (string, error) {
	exchanges, err := e.client.Exchanges(ctx)
	if err != nil {
		return "", err
	}
	return FormatExchanges(exchanges), nil
}

///////////////////////////////////////////////////////////////////////////////
// GLOBAL STATS

func (*globalStats) Name() string {
	return "get_global_stats"
}

func (*globalStats) Description() string {
	return "Get global cryptocurrency market statistics"
}

func (*globalStats) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[EmptyRequest](nil)
}

func (g *globalStats) Run(ctx context.Context, _ json.RawMessage) (string, error) {
	global, err := g.client.Global(ctx)
	if err != nil {
		return "", err
	}
	return FormatGlobal(global), nil
}

///////////////////////////////////////////////////////////////////////////////
// COIN EVENTS

func (*coinEvents) Name() string {
	return "get_coin_events"
}

func (*coinEvents) Description() string {
	return "Get events for a specific cryptocurrency"
}

func (*coinEvents) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[CoinRequest](nil)
}

func (c *coinEvents) Run(ctx context.Context, input json.RawMessage) (string, error) {
	req, err := decode[CoinRequest](input)
	if err != nil {
		return "", err
	} else if req.CoinId == "" {
		return "", paprika.ErrBadParameter.With("coinId is required")
	}

	events, err := c.client.CoinEvents(ctx, req.CoinId)
	if err != nil {
		return "", err
	}

	return FormatEvents(req.CoinId, events), nil
}

///////////////////////////////////////////////////////////////////////////////
// SEARCH COINS

func (*searchCoins) Name() string {
	return "search_coins"
}

func (*searchCoins) Description() string {
	return "Search for cryptocurrencies by name or symbol"
}

func (*searchCoins) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[SearchRequest](nil)
	if err != nil {
		return nil, err
	}
	if limit, ok := schema.Properties["limit"]; ok && limit != nil {
		limit.Default = json.RawMessage("10")
	}
	return schema, nil
}

// Run matches against the full ticker list, since the upstream has no
// search endpoint. An empty query matches every coin.
func (s *searchCoins) Run(ctx context.Context, input json.RawMessage) (string, error) {
	req, err := decode[SearchRequest](input)
	if err != nil {
		return "", err
	}

	tickers, err := s.client.Tickers(ctx, nil)
	if err != nil {
		return "", err
	}

	return FormatSearch(req.Query, Search(tickers, req.Query, req.Max())), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decode[T any](input json.RawMessage) (*T, error) {
	var req T
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, paprika.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}
	return &req, nil
}
