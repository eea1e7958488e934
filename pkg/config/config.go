/*
config holds the settings which are fixed when the process starts, and
loads them from a YAML file as a fallback for command-line flags.
*/
package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	paprika "github.com/mutablelogic/go-paprika"
	coinpaprika "github.com/mutablelogic/go-paprika/pkg/coinpaprika"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config is built once and passed by value
type Config struct {
	Endpoint string
	Proxy    *url.URL
	Timeout  time.Duration
	Version  string
	Debug    bool
	Verbose  bool
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	proxySchemes = []string{"http", "https", "socks5"}
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a configuration with the endpoint and proxy checked.
// An empty endpoint uses the public API, an empty proxy connects directly,
// and a zero timeout uses the default.
func New(endpoint, proxy string, timeout time.Duration) (Config, error) {
	config := Config{
		Endpoint: coinpaprika.EndPoint,
		Timeout:  coinpaprika.DefaultTimeout,
	}

	// Endpoint
	if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
		if u, err := url.Parse(endpoint); err != nil || u.Host == "" {
			return Config{}, paprika.ErrBadParameter.Withf("invalid endpoint: %q", endpoint)
		}
		config.Endpoint = strings.TrimSuffix(endpoint, "/")
	}

	// Proxy
	if proxy = strings.TrimSpace(proxy); proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil || u.Host == "" || !validScheme(u.Scheme) {
			return Config{}, paprika.ErrBadParameter.Withf("invalid proxy: %q", proxy)
		}
		config.Proxy = u
	}

	// Timeout
	switch {
	case timeout < 0:
		return Config{}, paprika.ErrBadParameter.Withf("invalid timeout: %v", timeout)
	case timeout > 0:
		config.Timeout = timeout
	}

	// Return success
	return config, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ClientOpts returns the options for the upstream client. The proxy is set
// before tracing so the traced transport wraps it.
func (c Config) ClientOpts(tracer trace.Tracer) []client.ClientOpt {
	opts := []client.ClientOpt{
		coinpaprika.OptProxy(c.Proxy),
		client.OptEndpoint(c.Endpoint),
		client.OptTimeout(c.Timeout),
		coinpaprika.OptUserAgent(c.Version),
	}
	if c.Debug || c.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, c.Verbose))
	}
	if tracer != nil {
		opts = append(opts, client.OptTracer(tracer))
	}
	return opts
}

// Redacted returns the proxy with any password removed, or an empty string
func (c Config) Redacted() string {
	if c.Proxy == nil {
		return ""
	}
	return c.Proxy.Redacted()
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func validScheme(scheme string) bool {
	for _, v := range proxySchemes {
		if strings.EqualFold(v, scheme) {
			return true
		}
	}
	return false
}
