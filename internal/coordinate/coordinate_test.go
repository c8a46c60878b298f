package coordinate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		notation string
		want     Coordinate
	}{
		{"com.fizzed:rocker-runtime", Coordinate{Group: "com.fizzed", Name: "rocker-runtime"}},
		{"org.slf4j:slf4j-simple:1.7.25", Coordinate{Group: "org.slf4j", Name: "slf4j-simple", Version: "1.7.25"}},
		{"  a:b:1 ", Coordinate{Group: "a", Name: "b", Version: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			got, err := Parse(tt.notation)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, notation := range []string{"", "solo", "a::1", "a:b:c:d", ":b"} {
		t.Run(notation, func(t *testing.T) {
			_, err := Parse(notation)
			assert.Error(t, err)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "a:b", Coordinate{Group: "a", Name: "b"}.String())
	assert.Equal(t, "a:b:1.0", Coordinate{Group: "a", Name: "b", Version: "1.0"}.String())
	assert.Equal(t, "a:b:2.0", MustParse("a:b:1.0").WithVersion("2.0").String())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "2.0.0", -1},
		{"3.1.0", "3.1.0", 0},
		{"v1.2.0", "1.1.0", 1},
		{"1.7.25", "1.7.3", 1},
		{"1.10", "1.9", 1},
		{"1.0.Final", "1.0.Beta", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestIsSemver(t *testing.T) {
	assert.True(t, IsSemver("3.1.0"))
	assert.True(t, IsSemver("v1.3.0"))
	assert.False(t, IsSemver("latest"))
}
