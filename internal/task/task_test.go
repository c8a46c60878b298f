package task

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	c := NewContainer()

	gen, err := c.Register("rockerMain", nil)
	require.NoError(t, err)
	assert.Equal(t, "rockerMain", gen.Name())
	assert.Equal(t, Registered, gen.State())

	_, err = c.Register("rockerMain", nil)
	assert.ErrorIs(t, err, ErrDuplicateTask)

	_, err = c.Register("", nil)
	assert.Error(t, err)

	got, ok := c.Lookup("rockerMain")
	require.True(t, ok)
	assert.Same(t, gen, got)

	_, err = c.Get("compileJava")
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestLifecycle_BindAndWire(t *testing.T) {
	c := NewContainer()
	gen, _ := c.Register("rockerMain", nil)
	compile, _ := c.Register("compileJava", nil)

	gen.SetDescription("Invokes the Rocker template engine.")
	gen.SetGroup("Rocker")
	gen.Bind("unit", "main")
	assert.Equal(t, Configured, gen.State())

	v, ok := gen.Input("unit")
	require.True(t, ok)
	assert.Equal(t, "main", v)

	compile.DependsOn(gen)
	compile.DependsOn(gen) // idempotent
	assert.Equal(t, Wired, gen.State())
	assert.Equal(t, []string{"rockerMain"}, compile.Dependencies())
	assert.Equal(t, Registered, compile.State())
}

func TestTransition(t *testing.T) {
	c := NewContainer()
	tk, _ := c.Register("a", nil)

	require.NoError(t, tk.Transition(Registered, Eligible))
	assert.ErrorContains(t, tk.Transition(Registered, Eligible), "expected REGISTERED, got ELIGIBLE")
	assert.ErrorContains(t, tk.Transition(Eligible, Wired), "disallowed transition")
}

func TestRun_Outcomes(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		action  Action
		want    State
		wantErr error
	}{
		{"success", func(context.Context, *Task) error { return nil }, Executed, nil},
		{"no source skips", func(context.Context, *Task) error { return ErrNoSource }, Skipped, nil},
		{"failure", func(context.Context, *Task) error { return boom }, Failed, boom},
		{"no action", nil, Executed, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContainer()
			tk, _ := c.Register("task", tt.action)
			require.NoError(t, tk.Transition(Registered, Eligible))

			err := tk.Run(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, tk.Err(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, tk.State())
		})
	}
}

func TestRun_RequiresEligible(t *testing.T) {
	c := NewContainer()
	tk, _ := c.Register("task", nil)
	assert.ErrorContains(t, tk.Run(context.Background()), "not eligible")
}

func TestRemove(t *testing.T) {
	c := NewContainer()
	gen, _ := c.Register("rockerMain", nil)
	compile, _ := c.Register("compileJava", nil)
	compile.DependsOn(gen)

	c.Remove("rockerMain")

	_, ok := c.Lookup("rockerMain")
	assert.False(t, ok)
	assert.Empty(t, compile.Dependencies())
	assert.Equal(t, []string{"compileJava"}, c.Names())
}

func TestPlan(t *testing.T) {
	c := NewContainer()
	compileJava, _ := c.Register("compileJava", nil)
	rockerMain, _ := c.Register("rockerMain", nil)
	compileTest, _ := c.Register("compileTestJava", nil)
	rockerTest, _ := c.Register("rockerTest", nil)
	compileJava.DependsOn(rockerMain)
	compileTest.DependsOn(rockerTest, compileJava)

	p, err := c.Plan("compileJava")
	require.NoError(t, err)
	assert.Equal(t, []string{"rockerMain", "compileJava"}, p.Names())

	p, err = c.Plan()
	require.NoError(t, err)
	assert.Equal(t, []string{"rockerMain", "rockerTest", "compileJava", "compileTestJava"}, p.Names())

	deps, err := p.Dependencies("compileTestJava")
	require.NoError(t, err)
	assert.Equal(t, []string{"compileJava", "rockerTest"}, deps)

	_, err = c.Plan("jar")
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestGraph_UnknownDependency(t *testing.T) {
	c := NewContainer()
	a, _ := c.Register("a", nil)

	other := NewContainer()
	foreign, _ := other.Register("foreign", nil)
	a.DependsOn(foreign)

	_, err := c.Graph()
	assert.ErrorIs(t, err, ErrUnknownTask)
}
