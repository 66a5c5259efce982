package options

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ── ResolveError ─────────────────────────────────────────────────────────────

// ResolveError aggregates validation failures per option name.
type ResolveError struct {
	Bag map[string][]string
}

func (e *ResolveError) add(name, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[name] = append(e.Bag[name], msg)
}

// Has returns true if there are any failures.
func (e *ResolveError) Has() bool { return len(e.Bag) > 0 }

// First returns the first failure message for an option.
func (e *ResolveError) First(name string) string {
	if msgs, ok := e.Bag[name]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the offending option names in lexicographic order.
func (e *ResolveError) Fields() []string {
	fields := make([]string, 0, len(e.Bag))
	for name := range e.Bag {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

func (e *ResolveError) Error() string {
	var parts []string
	for _, name := range e.Fields() {
		parts = append(parts, e.Bag[name]...)
	}
	return strings.Join(parts, "; ")
}

// ── Builder ──────────────────────────────────────────────────────────────────

// Builder accumulates option declarations: known names, default values, and
// per-option constraints. Extensions declare onto a shared Builder during
// container initialization; Resolve then validates the user-supplied values
// against everything declared.
type Builder struct {
	defaults      map[string]any
	defined       map[string]struct{}
	required      map[string]struct{}
	allowedTypes  map[string][]string
	allowedValues map[string][]any
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		defaults:      make(map[string]any),
		defined:       make(map[string]struct{}),
		required:      make(map[string]struct{}),
		allowedTypes:  make(map[string][]string),
		allowedValues: make(map[string][]any),
	}
}

// SetDefault declares an option with a default value. A later SetDefault for
// the same name wins, so extensions configured later may override defaults
// declared by earlier ones.
func (b *Builder) SetDefault(name string, value any) *Builder {
	b.defaults[name] = value
	b.defined[name] = struct{}{}
	return b
}

// SetDefaults declares several defaulted options at once.
func (b *Builder) SetDefaults(values map[string]any) *Builder {
	for name, value := range values {
		b.SetDefault(name, value)
	}
	return b
}

// SetDefined declares option names without defaults. A defined option is
// accepted from user input but absent from the resolved result unless
// supplied.
func (b *Builder) SetDefined(names ...string) *Builder {
	for _, name := range names {
		b.defined[name] = struct{}{}
	}
	return b
}

// SetRequired declares options that must end up with a value, either from a
// default or from user input.
func (b *Builder) SetRequired(names ...string) *Builder {
	for _, name := range names {
		b.defined[name] = struct{}{}
		b.required[name] = struct{}{}
	}
	return b
}

// SetAllowedTypes restricts the user-supplied value of an option to the given
// kinds: "string", "bool", "int", "float", "map", "slice".
func (b *Builder) SetAllowedTypes(name string, kinds ...string) *Builder {
	b.defined[name] = struct{}{}
	b.allowedTypes[name] = append(b.allowedTypes[name], kinds...)
	return b
}

// SetAllowedValues restricts the user-supplied value of an option to an
// explicit set.
func (b *Builder) SetAllowedValues(name string, values ...any) *Builder {
	b.defined[name] = struct{}{}
	b.allowedValues[name] = append(b.allowedValues[name], values...)
	return b
}

// ── Resolution ───────────────────────────────────────────────────────────────

// Resolve merges raw user values over the declared defaults and validates the
// result. Every raw key must have been declared; constrained values must pass
// their type and value checks; required options must be present. On failure
// it returns a *ResolveError carrying every violation, not just the first.
//
// The Builder itself is not mutated, so a Builder may be resolved against
// several raw maps.
func (b *Builder) Resolve(raw map[string]any) (map[string]any, error) {
	resolved := make(map[string]any, len(b.defaults)+len(raw))
	for name, value := range b.defaults {
		resolved[name] = value
	}

	resolveErr := &ResolveError{}

	for name, value := range raw {
		if _, ok := b.defined[name]; !ok {
			resolveErr.add(name, fmt.Sprintf(
				"the option %q does not exist; defined options are: %s",
				name, strings.Join(b.definedNames(), ", ")))
			continue
		}
		if kinds, ok := b.allowedTypes[name]; ok {
			if kind := kindOf(value); !contains(kinds, kind) {
				resolveErr.add(name, fmt.Sprintf(
					"the option %q has invalid type %q, expected one of: %s",
					name, kind, strings.Join(kinds, ", ")))
				continue
			}
		}
		if allowed, ok := b.allowedValues[name]; ok {
			if !containsValue(allowed, value) {
				resolveErr.add(name, fmt.Sprintf(
					"the option %q has invalid value %v", name, value))
				continue
			}
		}
		resolved[name] = value
	}

	for name := range b.required {
		if _, ok := resolved[name]; !ok {
			resolveErr.add(name, fmt.Sprintf("the required option %q is missing", name))
		}
	}

	if resolveErr.Has() {
		return nil, resolveErr
	}
	return resolved, nil
}

func (b *Builder) definedNames() []string {
	names := make([]string, 0, len(b.defined))
	for name := range b.defined {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// kindOf maps a dynamic value onto the coarse kind names used by
// SetAllowedTypes.
func kindOf(v any) string {
	if v == nil {
		return "nil"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Map:
		return "map"
	case reflect.Slice, reflect.Array:
		return "slice"
	default:
		return reflect.TypeOf(v).String()
	}
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsValue(haystack []any, needle any) bool {
	for _, v := range haystack {
		if reflect.DeepEqual(v, needle) {
			return true
		}
	}
	return false
}
