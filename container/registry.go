package container

import (
	"sort"
	"sync"
)

// ExtensionConstructor builds a fresh extension instance.
type ExtensionConstructor func() Extension

// ExtensionRegistry maps extension names to constructors for the dynamic
// loading variant: containers built with WithExtensionNames resolve names
// through a registry at Init time. It is safe for concurrent use.
type ExtensionRegistry struct {
	mu           sync.RWMutex
	constructors map[string]ExtensionConstructor
}

// NewExtensionRegistry creates an empty registry.
func NewExtensionRegistry() *ExtensionRegistry {
	return &ExtensionRegistry{
		constructors: make(map[string]ExtensionConstructor),
	}
}

// Register adds a constructor under name, failing when the name is taken.
func (r *ExtensionRegistry) Register(name string, construct ExtensionConstructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.constructors[name]; exists {
		return errExtensionAlreadyRegistered(name)
	}
	r.constructors[name] = construct
	return nil
}

// MustRegister panics on registration error. Useful from init() blocks.
func (r *ExtensionRegistry) MustRegister(name string, construct ExtensionConstructor) {
	if err := r.Register(name, construct); err != nil {
		panic(err)
	}
}

// Lookup returns the constructor for name, if present.
func (r *ExtensionRegistry) Lookup(name string) (ExtensionConstructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	construct, ok := r.constructors[name]
	return construct, ok
}

// Names returns all registered names in lexicographic order.
func (r *ExtensionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
