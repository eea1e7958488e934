/*
coinpaprika implements an API client and tools for the Coinpaprika API
https://api.coinpaprika.com/
*/
package coinpaprika

import (
	"context"
	"net/http"
	"net/url"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	paprika "github.com/mutablelogic/go-paprika"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	EndPoint       = "https://api.coinpaprika.com/v1"
	DefaultTimeout = 30 * time.Second
	userAgent      = "coinpaprika-mcp"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. Options are applied after the defaults, so the
// endpoint, user agent and timeout can be overridden.
func New(opts ...client.ClientOpt) (*Client, error) {
	defaults := []client.ClientOpt{
		client.OptEndpoint(EndPoint),
		client.OptUserAgent(userAgent),
		client.OptTimeout(DefaultTimeout),
	}
	client, err := client.New(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: client,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// OptProxy routes all requests through a forward proxy. A nil URL leaves
// the transport unchanged. It should come before any option which wraps
// the transport, such as client.OptTrace.
func OptProxy(proxy *url.URL) client.ClientOpt {
	return func(c *client.Client) error {
		if proxy == nil {
			return nil
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = http.ProxyURL(proxy)
		c.Client.Transport = transport
		return nil
	}
}

// OptUserAgent sets the identifying header with a version suffix
func OptUserAgent(version string) client.ClientOpt {
	if version == "" {
		return client.OptUserAgent(userAgent)
	}
	return client.OptUserAgent(userAgent + "/" + version)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tickers returns market data for all coins
func (c *Client) Tickers(ctx context.Context, req *TickersRequest) ([]Ticker, error) {
	var response []Ticker
	opts := []client.RequestOpt{client.OptPath("tickers")}
	if req != nil {
		opts = append(opts, client.OptQuery(req.Values()))
	}
	if err := c.DoWithContext(ctx, nil, &response, opts...); err != nil {
		return nil, paprika.ErrUpstream.Wrap(err)
	}
	return response, nil
}

// Ticker returns market data for a coin
func (c *Client) Ticker(ctx context.Context, id string) (*Ticker, error) {
	var response Ticker
	if id == "" {
		return nil, paprika.ErrBadParameter.With("missing coin id")
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("tickers", id)); err != nil {
		return nil, paprika.ErrUpstream.Wrap(err)
	} else if response.Id == "" {
		return nil, paprika.ErrUpstream.Withf("empty ticker for %q", id)
	}
	return &response, nil
}

// Coin returns the description and links for a coin
func (c *Client) Coin(ctx context.Context, id string) (*Coin, error) {
	var response Coin
	if id == "" {
		return nil, paprika.ErrBadParameter.With("missing coin id")
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("coins", id)); err != nil {
		return nil, paprika.ErrUpstream.Wrap(err)
	} else if response.Id == "" {
		return nil, paprika.ErrUpstream.Withf("empty coin for %q", id)
	}
	return &response, nil
}

// CoinMarkets returns the markets a coin trades on
func (c *Client) CoinMarkets(ctx context.Context, id string) ([]Market, error) {
	var response []Market
	if id == "" {
		return nil, paprika.ErrBadParameter.With("missing coin id")
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("coins", id, "markets")); err != nil {
		return nil, paprika.ErrUpstream.Wrap(err)
	}
	return response, nil
}

// CoinEvents returns the events for a coin
func (c *Client) CoinEvents(ctx context.Context, id string) ([]Event, error) {
	var response []Event
	if id == "" {
		return nil, paprika.ErrBadParameter.With("missing coin id")
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("coins", id, "events")); err != nil {
		return nil, paprika.ErrUpstream.Wrap(err)
	}
	return response, nil
}

// Exchanges returns all exchanges
func (c *Client) Exchanges(ctx context.Context) ([]Exchange, error) {
	var response []Exchange
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("exchanges")); err != nil {
		return nil, paprika.ErrUpstream.Wrap(err)
	}
	return response, nil
}

// Global returns the market overview
func (c *Client) Global(ctx context.Context) (*Global, error) {
	var response Global
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("global")); err != nil {
		return nil, paprika.ErrUpstream.Wrap(err)
	} else if response == (Global{}) {
		return nil, paprika.ErrUpstream.With("empty market overview")
	}
	return &response, nil
}
