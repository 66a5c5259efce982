// Package container provides a string-keyed service container: named
// configuration parameters, lazily constructed memoized services, tags for
// group discovery, and an extension protocol for assembling a container from
// pluggable parts.
//
// # Services
//
// Services are registered as factories and built on first use:
//
//	c := container.New()
//
//	err := c.Register("mailer", func(c *container.Container) any {
//	    transport := c.MustGet("transport").(*Transport)
//	    return NewMailer(transport)
//	})
//
//	mailer, err := container.Resolve[*Mailer](c, "mailer")
//
// Every Get for an id returns the identical instance; the factory runs at
// most once. A realized instance can also be injected directly:
//
//	c.Set("clock", fixedClock)
//
// # Parameters
//
//	c.SetParameter("retries", 3)
//	retries, err := container.Param[int](c, "retries")
//
// Mapping parameters can be shallow-merged in place with MergeParameter.
//
// # Tags
//
// Registrations can carry tags with attribute maps, and tagged ids are
// discoverable without instantiating anything:
//
//	c.Register("listener.audit", newAuditListener,
//	    container.WithTag("event.listener", map[string]any{"priority": 10}))
//
//	for id, attrs := range c.TaggedIDs("event.listener") {
//	    _ = attrs["priority"]
//	    listener := c.MustGet(id)
//	    ...
//	}
//
// # Extensions
//
// An Extension declares configuration options (Configure) and registers
// services once the merged configuration has been validated (Load):
//
//	c := container.New(
//	    container.WithExtensions(&cacheExtension{}, &mailExtension{}),
//	    container.WithConfiguration(map[string]any{"cache.driver": "redis"}),
//	)
//	if err := c.Init(); err != nil {
//	    ...
//	}
//
// Extensions load in declaration order, so a later extension may rely on
// services and parameters registered by an earlier one. Extensions can also
// be resolved by name through an ExtensionRegistry; see WithExtensionNames.
package container
