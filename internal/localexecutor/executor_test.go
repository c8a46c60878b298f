package localexecutor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/rockerbuild/internal/task"
)

// recorder keeps the order in which actions ran.
type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) action(err error) task.Action {
	return func(_ context.Context, t *task.Task) error {
		r.mu.Lock()
		r.order = append(r.order, t.Name())
		r.mu.Unlock()
		return err
	}
}

func (r *recorder) ran() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

func register(t *testing.T, c *task.Container, name string, action task.Action, deps ...string) *task.Task {
	t.Helper()
	tk, err := c.Register(name, action)
	require.NoError(t, err)
	for _, d := range deps {
		dep, ok := c.Lookup(d)
		require.True(t, ok, d)
		tk.DependsOn(dep)
	}
	return tk
}

func TestExecute_RespectsDependencies(t *testing.T) {
	rec := &recorder{}
	c := task.NewContainer()
	register(t, c, "rockerMain", rec.action(nil))
	register(t, c, "rockerTest", rec.action(nil))
	register(t, c, "compileJava", rec.action(nil), "rockerMain")
	register(t, c, "compileTestJava", rec.action(nil), "rockerTest", "compileJava")

	plan, err := c.Plan()
	require.NoError(t, err)

	report, err := New(4).Execute(context.Background(), plan)
	require.NoError(t, err)

	order := rec.ran()
	require.Len(t, order, 4)
	pos := make(map[string]int)
	for i, n := range order {
		pos[n] = i
	}
	assert.Less(t, pos["rockerMain"], pos["compileJava"])
	assert.Less(t, pos["compileJava"], pos["compileTestJava"])
	assert.Less(t, pos["rockerTest"], pos["compileTestJava"])

	assert.ElementsMatch(t, []string{"rockerMain", "rockerTest", "compileJava", "compileTestJava"}, report.ByState(task.Executed))
	for _, o := range report.Outcomes {
		assert.Equal(t, task.Executed, o.State)
		assert.NoError(t, o.Err)
	}
}

func TestExecute_FailureSkipsDependents(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("template error")
	c := task.NewContainer()
	register(t, c, "rockerMain", rec.action(boom))
	register(t, c, "compileJava", rec.action(nil), "rockerMain")
	register(t, c, "jar", rec.action(nil), "compileJava")

	plan, err := c.Plan()
	require.NoError(t, err)

	report, err := New(2).Execute(context.Background(), plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, `task "rockerMain" failed`)

	assert.Equal(t, []string{"rockerMain"}, rec.ran())
	assert.Equal(t, []string{"rockerMain"}, report.ByState(task.Failed))
	assert.Equal(t, []string{"compileJava", "jar"}, report.ByState(task.Skipped))

	jar, _ := c.Lookup("jar")
	assert.Equal(t, task.Skipped, jar.State())
	o, ok := report.Outcome("jar")
	require.True(t, ok)
	assert.ErrorContains(t, o.Err, "upstream failure")
}

func TestExecute_KeepGoingRunsIndependentTasks(t *testing.T) {
	rec := &recorder{}
	boomA := errors.New("a failed")
	boomB := errors.New("b failed")
	c := task.NewContainer()
	register(t, c, "a", rec.action(boomA))
	register(t, c, "b", rec.action(boomB))
	register(t, c, "c", rec.action(nil))
	register(t, c, "d", rec.action(nil), "a", "c")

	plan, err := c.Plan()
	require.NoError(t, err)

	report, err := New(1, WithKeepGoing(true)).Execute(context.Background(), plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, boomA)
	assert.ErrorIs(t, err, boomB)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, rec.ran())
	assert.Equal(t, []string{"c"}, report.ByState(task.Executed))
	assert.Equal(t, []string{"d"}, report.ByState(task.Skipped))
}

func TestExecute_NoSourceUnlocksDependents(t *testing.T) {
	rec := &recorder{}
	c := task.NewContainer()
	register(t, c, "rockerMain", func(ctx context.Context, tk *task.Task) error {
		_ = rec.action(nil)(ctx, tk)
		return task.ErrNoSource
	})
	register(t, c, "compileJava", rec.action(nil), "rockerMain")

	plan, err := c.Plan()
	require.NoError(t, err)

	report, err := New(2).Execute(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, []string{"rockerMain"}, report.ByState(task.Skipped))
	assert.Equal(t, []string{"compileJava"}, report.ByState(task.Executed))
}

func TestExecute_CanceledContextSkipsEverything(t *testing.T) {
	var calls atomic.Int32
	c := task.NewContainer()
	action := func(context.Context, *task.Task) error { calls.Add(1); return nil }
	register(t, c, "a", action)
	register(t, c, "b", action, "a")

	plan, err := c.Plan()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := New(2).Execute(ctx, plan)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
	assert.Equal(t, []string{"a", "b"}, report.ByState(task.Skipped))
}

func TestExecute_RunsInParallel(t *testing.T) {
	const n = 4
	var started sync.WaitGroup
	started.Add(n)
	release := make(chan struct{})
	c := task.NewContainer()
	for _, name := range []string{"a", "b", "c", "d"} {
		register(t, c, name, func(context.Context, *task.Task) error {
			started.Done()
			<-release
			return nil
		})
	}
	plan, err := c.Plan()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := New(n).Execute(context.Background(), plan)
		done <- err
	}()

	waited := make(chan struct{})
	go func() { started.Wait(); close(waited) }()
	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		t.Fatal("tasks did not start concurrently")
	}
	close(release)
	require.NoError(t, <-done)
}

func TestNew_MinimumOneWorker(t *testing.T) {
	assert.Equal(t, 1, New(0).numWorkers)
	assert.Equal(t, 1, New(-3).numWorkers)
}
