package container

import (
	"fmt"

	"github.com/km-arc/crucible/options"
)

// ── Extension interface ──────────────────────────────────────────────────────

// Extension is a collaborator loaded during Init.
//
// Configure declares the configuration keys the extension recognizes, with
// their defaults and constraints, onto the shared options.Builder. It must
// have no side effects beyond the declarations.
//
// Load is called after the merged configuration has been validated and
// written into the parameter store. It registers services and parameters and
// may read anything registered by extensions loaded earlier in the sequence.
//
//	type cacheExtension struct{ container.BaseExtension }
//
//	func (cacheExtension) Configure(b *options.Builder) {
//	    b.SetDefault("cache.driver", "memory")
//	}
//
//	func (cacheExtension) Load(c *container.Container) error {
//	    return c.Register("cache", func(c *container.Container) any {
//	        driver, _ := container.Param[string](c, "cache.driver")
//	        return newCache(driver)
//	    })
//	}
type Extension interface {
	Configure(b *options.Builder)
	Load(c *Container) error
}

// BaseExtension is an embeddable no-op implementation of Extension. Embed it
// and override only what you need.
type BaseExtension struct{}

func (BaseExtension) Configure(_ *options.Builder) {}
func (BaseExtension) Load(_ *Container) error      { return nil }

// ── Initialization ───────────────────────────────────────────────────────────

// Init runs the extension loading sequence:
//
//  1. Resolve named extensions through the registry, in declaration order.
//  2. Call Configure on every extension so each declares its options.
//  3. Validate the user configuration against the accumulated declarations.
//  4. Write every validated key into the parameter store.
//  5. Call Load on every extension, in the same order.
//
// With no extensions and no user configuration Init is a no-op: such a
// container never pays the validation cost and may skip Init entirely.
//
// After a successful Init further calls are no-ops. Init is fail-fast and
// non-transactional: a failure aborts the sequence but leaves state mutated
// by earlier steps in place, and the container stays uninitialized — calling
// Init again re-runs extension loading, so registrations made before the
// failure will now fail as already registered.
func (c *Container) Init() error {
	if c.initialized {
		return nil
	}

	if len(c.extensions) == 0 && len(c.names) == 0 && len(c.userConfig) == 0 {
		c.initialized = true
		return nil
	}

	extensions, err := c.resolveExtensions()
	if err != nil {
		return err
	}

	builder := options.NewBuilder()
	for _, ext := range extensions {
		ext.Configure(builder)
		c.logger.Debug("extension configured", "extension", fmt.Sprintf("%T", ext))
	}

	resolved, err := builder.Resolve(c.userConfig)
	if err != nil {
		return errInvalidConfiguration(err)
	}
	for name, value := range resolved {
		c.SetParameter(name, value)
	}
	c.logger.Debug("configuration resolved", "keys", len(resolved))

	for _, ext := range extensions {
		if err := ext.Load(c); err != nil {
			return err
		}
		c.logger.Debug("extension loaded", "extension", fmt.Sprintf("%T", ext))
	}

	// Extension instances are owned only for the duration of Init.
	c.extensions = nil
	c.names = nil
	c.initialized = true
	return nil
}

// Initialized reports whether Init has completed successfully (or was
// skipped as the empty fast path).
func (c *Container) Initialized() bool {
	return c.initialized
}

// resolveExtensions combines directly supplied extensions with named ones
// looked up in the registry, preserving the order options were applied in.
func (c *Container) resolveExtensions() ([]Extension, error) {
	extensions := make([]Extension, 0, len(c.extensions)+len(c.names))
	extensions = append(extensions, c.extensions...)

	for _, name := range c.names {
		if c.registry == nil {
			return nil, errUnknownExtension(name)
		}
		construct, ok := c.registry.Lookup(name)
		if !ok {
			return nil, errUnknownExtension(name)
		}
		extensions = append(extensions, construct())
	}
	return extensions, nil
}
