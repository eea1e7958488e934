package config

import (
	"io"
	"strings"

	// Packages
	kong "github.com/alecthomas/kong"
	paprika "github.com/mutablelogic/go-paprika"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// YAML returns a resolver which supplies flag values from a YAML document.
// Keys are flag names, with hyphens or underscores, and dotted names may be
// nested. Flags given on the command line take precedence.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, paprika.ErrBadParameter.Withf("invalid configuration: %v", err)
	}

	var fn kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if v, exists := values[name]; exists {
				return v, nil
			}
		}

		// Nested keys
		var v any = values
		for _, part := range strings.Split(flag.Name, ".") {
			if m, ok := v.(map[string]any); !ok {
				return nil, nil
			} else if v, ok = m[part]; !ok {
				return nil, nil
			}
		}
		return v, nil
	}
	return fn, nil
}
