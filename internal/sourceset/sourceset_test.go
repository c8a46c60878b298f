package sourceset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	tests := []struct {
		name      string
		wantTask  string
		wantScope string
	}{
		{"main", "compileJava", "compile"},
		{"test", "compileTestJava", "testCompile"},
		{"integrationTest", "compileIntegrationTestJava", "integrationTestCompile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SourceSet{name: tt.name}
			assert.Equal(t, tt.wantTask, s.CompileTaskName())
			assert.Equal(t, tt.wantScope, s.CompileScopeName())
		})
	}
}

func TestContainer(t *testing.T) {
	c := NewContainer()
	var seen []string
	c.WhenAdded(func(s *SourceSet) error {
		seen = append(seen, s.Name())
		return nil
	})

	main, err := c.Create(Main, "src/main/java")
	require.NoError(t, err)
	main.AddSrcDir("src/main/java")
	main.AddSrcDir("build/generated-src/rocker/main")
	assert.Equal(t, []string{"src/main/java", "build/generated-src/rocker/main"}, main.SrcDirs())

	_, err = c.Create(Main)
	assert.ErrorContains(t, err, "already exists")

	got, ok := c.FindByName("main")
	require.True(t, ok)
	assert.Same(t, main, got)

	_, ok = c.FindByName("integrationTest")
	assert.False(t, ok)
	assert.Equal(t, []string{"main"}, seen)
}

func TestContainer_ObserverErrorRollsBack(t *testing.T) {
	c := NewContainer()
	c.WhenAdded(func(*SourceSet) error { return errors.New("no compile task") })

	_, err := c.Create("test")
	assert.ErrorContains(t, err, "no compile task")
	_, ok := c.FindByName("test")
	assert.False(t, ok)
	assert.Empty(t, c.Names())
}

func TestGeneratedSrcDirs(t *testing.T) {
	s := &SourceSet{name: Main}
	s.AddSrcDir("src/main/java")
	out := "build/generated-src/rocker/main"
	s.AddGeneratedSrcDir(func() string { return out })
	s.AddGeneratedSrcDir(func() string { return "src/main/java" })
	assert.Equal(t, []string{"src/main/java", "build/generated-src/rocker/main"}, s.SrcDirs())

	out = "gen/main"
	assert.Equal(t, []string{"src/main/java", "gen/main"}, s.SrcDirs())
	assert.Equal(t, []string{"src/main/java"}, s.DeclaredSrcDirs())
}
