// Package options implements the declare-then-resolve configuration contract
// used during container initialization.
//
// Extensions declare the option names they recognize, their default values,
// and optional constraints onto a Builder:
//
//	b := options.NewBuilder()
//	b.SetDefault("driver", "memory").
//	    SetAllowedValues("driver", "memory", "redis").
//	    SetDefined("dsn").
//	    SetRequired("name").
//	    SetAllowedTypes("pool_size", "int")
//
// Resolve then merges user-supplied values over the defaults and validates:
//
//	cfg, err := b.Resolve(map[string]any{"name": "app", "pool_size": 8})
//
// Unknown keys, constraint violations, and missing required options all fail
// with a *ResolveError listing every violation per option name.
package options
