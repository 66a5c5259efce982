package container

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ── Registration types ───────────────────────────────────────────────────────

// Factory builds a service from the container. It may call Get on other ids
// to resolve its own dependencies; cycles between factories are not detected
// and recurse until the stack gives out.
type Factory func(c *Container) any

// registration holds a factory plus the tag metadata attached at Register
// time.
type registration struct {
	factory Factory
	tags    map[string]map[string]any
}

// RegisterOption modifies a single registration.
type RegisterOption func(*registration)

// WithTag attaches a tag with an attribute map to a registration. Attributes
// may be nil.
func WithTag(name string, attrs map[string]any) RegisterOption {
	return func(r *registration) {
		if r.tags == nil {
			r.tags = make(map[string]map[string]any)
		}
		copied := make(map[string]any, len(attrs))
		for k, v := range attrs {
			copied[k] = v
		}
		r.tags[name] = copied
	}
}

// ── Container ────────────────────────────────────────────────────────────────

// Container is a string-keyed service container: named parameters, lazily
// constructed memoized services, and a tag index over registrations.
//
// A container is expected to be built and initialized by a single goroutine
// before any concurrent readers touch it; concurrent Register/Get on the same
// container is not guaranteed safe beyond the internal map locking.
type Container struct {
	mu     sync.RWMutex
	logger *slog.Logger

	params        map[string]any
	registrations map[string]*registration
	instances     map[string]any

	extensions  []Extension
	names       []string
	registry    *ExtensionRegistry
	userConfig  map[string]any
	initialized bool
}

// New creates a container. Extensions and user configuration supplied through
// options take effect when Init is called; a container built without either
// is immediately usable as a bare registry.
func New(opts ...Option) *Container {
	c := &Container{
		logger:        slog.Default(),
		params:        make(map[string]any),
		registrations: make(map[string]*registration),
		instances:     make(map[string]any),
		userConfig:    make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Parameters ───────────────────────────────────────────────────────────────

// SetParameter stores a parameter, replacing any previous value.
func (c *Container) SetParameter(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params[name] = value
}

// MergeParameter shallow-merges partial over an existing mapping parameter;
// keys in partial win. It fails when the parameter is unset or when its
// current value is not a mapping.
func (c *Container) MergeParameter(name string, partial map[string]any) error {
	current, err := c.Parameter(name)
	if err != nil {
		return err
	}

	existing, ok := current.(map[string]any)
	if !ok {
		return errTypeMismatch(name, fmt.Sprintf(
			"cannot merge into parameter %q: existing value is scalar (%T), not a mapping",
			name, current))
	}

	merged := make(map[string]any, len(existing)+len(partial))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range partial {
		merged[k] = v
	}

	c.SetParameter(name, merged)
	return nil
}

// Parameter returns a parameter value, failing when the name was never set.
func (c *Container) Parameter(name string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.params[name]
	if !ok {
		return nil, errParameterNotFound(name)
	}
	return value, nil
}

// MustParameter is like Parameter but panics when the name is unset.
func (c *Container) MustParameter(name string) any {
	value, err := c.Parameter(name)
	if err != nil {
		panic(err)
	}
	return value
}

// HasParameter reports whether a parameter is set.
func (c *Container) HasParameter(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.params[name]
	return ok
}

// Parameters returns a copied snapshot of all parameters.
func (c *Container) Parameters() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make(map[string]any, len(c.params))
	for k, v := range c.params {
		snapshot[k] = v
	}
	return snapshot
}

// Param reads a parameter and asserts it to T.
//
//	port, err := container.Param[int](c, "server.port")
func Param[T any](c *Container, name string) (T, error) {
	value, err := c.Parameter(name)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, errTypeMismatch(name, fmt.Sprintf(
			"parameter %q holds %T, not %T", name, value, zero))
	}
	return typed, nil
}

// ── Services ─────────────────────────────────────────────────────────────────

// Register stores a factory under id. A service id may be registered exactly
// once; a second Register for the same id fails and leaves the first
// registration authoritative. Registration never runs the factory.
func (c *Container) Register(id string, factory Factory, opts ...RegisterOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.registrations[id]; exists {
		return errAlreadyRegistered(id)
	}

	reg := &registration{factory: factory}
	for _, opt := range opts {
		opt(reg)
	}
	c.registrations[id] = reg

	c.logger.Debug("service registered", "id", id, "tags", len(reg.tags))
	return nil
}

// MustRegister panics on registration error. Useful from init() blocks and
// bootstrap code where a duplicate id is a programming error.
func (c *Container) MustRegister(id string, factory Factory, opts ...RegisterOption) {
	if err := c.Register(id, factory, opts...); err != nil {
		panic(err)
	}
}

// Get returns the service for id, running its factory on first request and
// caching the result: every later Get returns the identical instance. It
// fails when id has neither a cached instance nor a registered factory.
func (c *Container) Get(id string) (any, error) {
	c.mu.RLock()
	if instance, ok := c.instances[id]; ok {
		c.mu.RUnlock()
		return instance, nil
	}
	reg, ok := c.registrations[id]
	c.mu.RUnlock()

	if !ok {
		return nil, errServiceNotFound(id)
	}

	// The factory runs unlocked so it can recursively Get its dependencies.
	instance := reg.factory(c)

	c.mu.Lock()
	c.instances[id] = instance
	c.mu.Unlock()

	return instance, nil
}

// MustGet is like Get but panics on failure.
func (c *Container) MustGet(id string) any {
	instance, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return instance
}

// Has reports whether a factory is registered for id. It deliberately does
// NOT reflect instances injected solely via Set: such an id reports
// Has == false while Get on it still succeeds.
func (c *Container) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.registrations[id]
	return ok
}

// Set places a realized instance into the cache unconditionally, overriding
// any future factory invocation for id.
func (c *Container) Set(id string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[id] = instance
}

// Keys returns every known service id — registered or injected — in
// lexicographic order.
func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.registrations)+len(c.instances))
	for id := range c.registrations {
		keys = append(keys, id)
	}
	for id := range c.instances {
		if _, registered := c.registrations[id]; !registered {
			keys = append(keys, id)
		}
	}
	sort.Strings(keys)
	return keys
}

// ── Tags ─────────────────────────────────────────────────────────────────────

// TaggedIDs returns, for every registration carrying tag, the service id
// mapped to that tag's attribute map. Only registration metadata is
// inspected — no service is instantiated. Callers wanting the services call
// Get on each returned id.
func (c *Container) TaggedIDs(tag string) map[string]map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make(map[string]map[string]any)
	for id, reg := range c.registrations {
		attrs, ok := reg.tags[tag]
		if !ok {
			continue
		}
		copied := make(map[string]any, len(attrs))
		for k, v := range attrs {
			copied[k] = v
		}
		ids[id] = copied
	}
	return ids
}

// Tags returns the full tag map of a registration, or nil for unknown or
// untagged ids.
func (c *Container) Tags(id string) map[string]map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	reg, ok := c.registrations[id]
	if !ok || len(reg.tags) == 0 {
		return nil
	}
	tags := make(map[string]map[string]any, len(reg.tags))
	for name, attrs := range reg.tags {
		copied := make(map[string]any, len(attrs))
		for k, v := range attrs {
			copied[k] = v
		}
		tags[name] = copied
	}
	return tags
}

// ── Generics helpers ─────────────────────────────────────────────────────────

// Resolve calls Get and asserts the result to T.
//
//	mailer, err := container.Resolve[*Mailer](c, "mailer")
func Resolve[T any](c *Container, id string) (T, error) {
	instance, err := c.Get(id)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		var zero T
		return zero, errTypeMismatch(id, fmt.Sprintf(
			"service %q resolved to %T, not %T", id, instance, zero))
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](c *Container, id string) T {
	typed, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return typed
}
