package rocker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
	"github.com/specialistvlad/rockerbuild/internal/task"
)

// MainClass is the compiler entrypoint invoked on the JVM.
const MainClass = "com.fizzed.rocker.compiler.JavaGeneratorMain"

// CompileError reports a failed compiler run. Output is the tool's combined
// stdout and stderr, unmodified.
type CompileError struct {
	Unit   string
	Err    error
	Output []byte
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("rocker compilation of unit %q failed: %v", e.Unit, e.Err)
	if len(e.Output) > 0 {
		msg += "\n" + string(e.Output)
	}
	return msg
}

func (e *CompileError) Unwrap() error { return e.Err }

// Arguments builds the JVM argument list for compiling u with the given
// classpath. Directories must already be absolute.
func Arguments(u *Unit, templateDir, outputDir, classDir string, classpath []string) []string {
	args := []string{
		"-cp", strings.Join(classpath, string(os.PathListSeparator)),
		"-Drocker.template.dir=" + templateDir,
		"-Drocker.output.dir=" + outputDir,
	}
	if classDir != "" {
		args = append(args, "-Drocker.class.dir="+classDir)
	}
	keys := make([]string, 0, len(u.Options))
	for k := range u.Options {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		args = append(args, fmt.Sprintf("-Drocker.option.%s=%s", k, u.Options[k]))
	}
	return append(args, MainClass)
}

// javaExecutable picks the configured java, then $JAVA_HOME, then PATH.
func (e *Extension) javaExecutable() string {
	if e.Java != "" {
		return e.Java
	}
	if home := os.Getenv("JAVA_HOME"); home != "" {
		return filepath.Join(home, "bin", "java")
	}
	return "java"
}

// generate returns the action of u's generation task.
func (pv *provisioner) generate(u *Unit) task.Action {
	return func(ctx context.Context, t *task.Task) error {
		logger := ctxlog.FromContext(ctx).With("task", t.Name(), "unit", u.Name())

		templateDir := pv.project.Path(u.TemplateDir)
		if _, err := os.Stat(templateDir); errors.Is(err, fs.ErrNotExist) {
			logger.Info("Template directory does not exist, nothing to generate.", "template_dir", templateDir)
			return task.ErrNoSource
		} else if err != nil {
			return err
		}

		outputDir := pv.project.Path(u.OutputDir)
		if err := os.RemoveAll(outputDir); err != nil {
			return fmt.Errorf("failed to clean output dir: %w", err)
		}
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
		var classDir string
		if u.ClassDir != "" {
			classDir = pv.project.Path(u.ClassDir)
			if err := os.MkdirAll(classDir, 0o755); err != nil {
				return fmt.Errorf("failed to create class dir: %w", err)
			}
		}

		res, err := pv.compiler.Resolve(ctx)
		if err != nil {
			return err
		}

		java := pv.ext.javaExecutable()
		args := Arguments(u, templateDir, outputDir, classDir, res.Files())
		logger.Debug("Invoking Rocker compiler.", "java", java, "args", args)

		cmd := exec.CommandContext(ctx, java, args...)
		cmd.Dir = pv.project.Dir()
		out, err := cmd.CombinedOutput()
		if err != nil {
			return &CompileError{Unit: u.Name(), Err: err, Output: out}
		}
		if len(out) > 0 {
			logger.Debug("Rocker compiler output.", "output", string(out))
		}
		logger.Info("Templates generated.", "output_dir", outputDir)
		return nil
	}
}
