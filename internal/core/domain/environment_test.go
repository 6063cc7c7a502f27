package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/wasmbuild/internal/core/domain"
)

func TestNewEnvironment(t *testing.T) {
	env := domain.NewEnvironment([]string{"PATH=/bin", "EMPTY=", "BROKEN", "=nokey", "PATH=/usr/bin", "EQ=a=b"})

	assert.Equal(t, 3, env.Len())

	v, ok := env.Lookup("PATH")
	assert.True(t, ok)
	assert.Equal(t, "/usr/bin", v, "later duplicates win")

	v, ok = env.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Empty(t, v)

	v, _ = env.Lookup("EQ")
	assert.Equal(t, "a=b", v)

	_, ok = env.Lookup("BROKEN")
	assert.False(t, ok)
}

func TestEnvironment_WithDoesNotMutate(t *testing.T) {
	base := domain.NewEnvironment([]string{"A=1"})
	next := base.With("B", "2")

	_, ok := base.Lookup("B")
	assert.False(t, ok)
	assert.Equal(t, []string{"A=1"}, base.Entries())
	assert.Equal(t, []string{"A=1", "B=2"}, next.Entries())
}

func TestEnvironment_WithOnZeroValue(t *testing.T) {
	var env domain.Environment
	next := env.With("A", "1")
	assert.Equal(t, []string{"A=1"}, next.Entries())
	assert.Equal(t, 0, env.Len())
}

func TestEnvironment_WithDefault(t *testing.T) {
	tests := []struct {
		name     string
		base     []string
		expected string
	}{
		{name: "absent", base: []string{"PATH=/bin"}, expected: "true"},
		{name: "caller value kept", base: []string{"CARGO_PROFILE_RELEASE_DEBUG=1"}, expected: "1"},
		{name: "caller empty value kept", base: []string{"CARGO_PROFILE_RELEASE_DEBUG="}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := domain.NewEnvironment(tt.base)
			env := base.WithDefault(domain.DebugInfoEnvVar, "true")

			v, ok := env.Lookup(domain.DebugInfoEnvVar)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, v)
			assert.Equal(t, domain.NewEnvironment(tt.base).Entries(), base.Entries())
		})
	}
}

func TestEnvironment_Added(t *testing.T) {
	base := domain.NewEnvironment([]string{"A=1", "B=2"})
	env := base.With("C", "3").With("A", "changed")

	assert.Equal(t, []string{"A=changed", "C=3"}, env.Added(base))
	assert.Empty(t, base.Added(base))
}
