package container

import "log/slog"

// Option configures a Container at construction time.
type Option func(*Container)

// WithLogger sets the logger used for registration and initialization
// progress. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithExtensions appends extensions to be loaded by Init, in the given order.
func WithExtensions(extensions ...Extension) Option {
	return func(c *Container) {
		c.extensions = append(c.extensions, extensions...)
	}
}

// WithRegistry sets the registry used to resolve extension names supplied
// through WithExtensionNames.
func WithRegistry(registry *ExtensionRegistry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

// WithExtensionNames appends extension names to be resolved through the
// registry at Init time. A name that does not resolve fails Init.
func WithExtensionNames(names ...string) Option {
	return func(c *Container) {
		c.names = append(c.names, names...)
	}
}

// WithConfiguration merges user configuration to be validated against the
// extensions' declared options during Init. User values win over extension
// defaults.
func WithConfiguration(config map[string]any) Option {
	return func(c *Container) {
		for name, value := range config {
			c.userConfig[name] = value
		}
	}
}
