package rocker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/specialistvlad/rockerbuild/internal/coordinate"
)

func TestResolveVersion(t *testing.T) {
	assert.Equal(t, DefaultVersion, ResolveVersion(""))
	assert.Equal(t, DefaultVersion, ResolveVersion("   "))
	assert.Equal(t, "2.0.1", ResolveVersion("2.0.1"))
	assert.Equal(t, "2.0.1", ResolveVersion(" 2.0.1\n"))
}

func TestInFamily(t *testing.T) {
	testCases := []struct {
		notation string
		want     bool
	}{
		{"com.fizzed:rocker-runtime:1.0", true},
		{"com.fizzed:rocker-compiler", true},
		{"com.fizzed:rocker:1.0", false},
		{"com.fizzed:blaze-core:1.0", false},
		{"org.fizzed:rocker-runtime:1.0", false},
		{"com.fizzed.other:rocker-runtime:1.0", false},
	}
	for _, tc := range testCases {
		t.Run(tc.notation, func(t *testing.T) {
			assert.Equal(t, tc.want, InFamily(coordinate.MustParse(tc.notation)))
		})
	}
}

func TestVersionPolicy_Memoized(t *testing.T) {
	calls := 0
	override := "2.2.0"
	p := NewVersionPolicy(func() string { calls++; return override }, nil)

	assert.Equal(t, "2.2.0", p.Version())
	override = "9.0.0"
	assert.Equal(t, "2.2.0", p.Version(), "the decision must not change once made")
	assert.Equal(t, 1, calls)
}

func TestVersionPolicy_ReadsOverrideLazily(t *testing.T) {
	var override string
	p := NewVersionPolicy(func() string { return override }, nil)
	override = "3.1.0"
	assert.Equal(t, "3.1.0", p.Version())
}

func TestVersionPolicy_NilOverride(t *testing.T) {
	p := NewVersionPolicy(nil, nil)
	assert.Equal(t, DefaultVersion, p.Version())
}

func TestVersionPolicy_Rule(t *testing.T) {
	p := NewVersionPolicy(func() string { return "1.4.0" }, nil)
	rule := p.Rule()

	t.Run("explicit family version is overridden", func(t *testing.T) {
		got := rule(coordinate.MustParse("com.fizzed:rocker-runtime:9.9.9"))
		assert.Equal(t, coordinate.MustParse("com.fizzed:rocker-runtime:1.4.0"), got)
	})

	t.Run("version-less family request is filled in", func(t *testing.T) {
		got := rule(coordinate.MustParse("com.fizzed:rocker-compiler"))
		assert.Equal(t, "1.4.0", got.Version)
	})

	t.Run("other modules pass through", func(t *testing.T) {
		in := coordinate.MustParse("org.slf4j:slf4j-simple:1.7.25")
		assert.Equal(t, in, rule(in))
	})
}
