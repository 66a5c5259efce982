package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/crucible/options"
)

func TestResolve_DefaultsFillMissingKeys(t *testing.T) {
	b := options.NewBuilder().
		SetDefault("driver", "memory").
		SetDefault("ttl", 300)

	resolved, err := b.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", resolved["driver"])
	assert.Equal(t, 300, resolved["ttl"])
}

func TestResolve_UserValueWins(t *testing.T) {
	b := options.NewBuilder().SetDefault("driver", "memory")

	resolved, err := b.Resolve(map[string]any{"driver": "redis"})
	require.NoError(t, err)
	assert.Equal(t, "redis", resolved["driver"])
}

func TestResolve_LaterDefaultOverridesEarlier(t *testing.T) {
	b := options.NewBuilder().
		SetDefault("driver", "memory").
		SetDefault("driver", "redis")

	resolved, err := b.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "redis", resolved["driver"])
}

func TestResolve_UndefinedOptionFails(t *testing.T) {
	b := options.NewBuilder().SetDefault("driver", "memory")

	_, err := b.Resolve(map[string]any{"drvier": "redis"})
	require.Error(t, err)

	var resolveErr *options.ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Contains(t, resolveErr.First("drvier"), `"drvier" does not exist`)
	assert.Contains(t, resolveErr.First("drvier"), "driver")
}

func TestResolve_DefinedOptionAcceptedWithoutDefault(t *testing.T) {
	b := options.NewBuilder().SetDefined("dsn")

	resolved, err := b.Resolve(map[string]any{"dsn": "postgres://"})
	require.NoError(t, err)
	assert.Equal(t, "postgres://", resolved["dsn"])

	// Absent from the result when not supplied.
	resolved, err = b.Resolve(nil)
	require.NoError(t, err)
	assert.NotContains(t, resolved, "dsn")
}

func TestResolve_RequiredOptionMissingFails(t *testing.T) {
	b := options.NewBuilder().SetRequired("name")

	_, err := b.Resolve(nil)
	require.Error(t, err)

	var resolveErr *options.ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Contains(t, resolveErr.First("name"), "required")
}

func TestResolve_RequiredSatisfiedByDefault(t *testing.T) {
	b := options.NewBuilder().
		SetRequired("name").
		SetDefault("name", "app")

	resolved, err := b.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "app", resolved["name"])
}

func TestResolve_AllowedTypes(t *testing.T) {
	b := options.NewBuilder().SetAllowedTypes("pool_size", "int")

	resolved, err := b.Resolve(map[string]any{"pool_size": 8})
	require.NoError(t, err)
	assert.Equal(t, 8, resolved["pool_size"])

	_, err = b.Resolve(map[string]any{"pool_size": "eight"})
	require.Error(t, err)

	var resolveErr *options.ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Contains(t, resolveErr.First("pool_size"), `invalid type "string"`)
}

func TestResolve_AllowedValues(t *testing.T) {
	b := options.NewBuilder().SetAllowedValues("env", "dev", "prod")

	_, err := b.Resolve(map[string]any{"env": "dev"})
	require.NoError(t, err)

	_, err = b.Resolve(map[string]any{"env": "staging"})
	require.Error(t, err)
}

func TestResolve_AggregatesEveryViolation(t *testing.T) {
	b := options.NewBuilder().
		SetAllowedTypes("port", "int").
		SetRequired("name")

	_, err := b.Resolve(map[string]any{"port": "80", "bogus": 1})
	require.Error(t, err)

	var resolveErr *options.ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.ElementsMatch(t, []string{"port", "bogus", "name"}, resolveErr.Fields())
}

func TestResolve_DoesNotMutateBuilder(t *testing.T) {
	b := options.NewBuilder().SetDefault("driver", "memory")

	_, err := b.Resolve(map[string]any{"driver": "redis"})
	require.NoError(t, err)

	// A second resolve against empty input still sees the pristine default.
	resolved, err := b.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "memory", resolved["driver"])
}
