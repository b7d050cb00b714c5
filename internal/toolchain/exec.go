package toolchain

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is an external command line plus extra environment.
type Command struct {
	Name string
	Args []string
	// Env entries are KEY=VALUE and are added to the current environment.
	Env   []string
	Dir   string
	Stdin io.Reader
	// Stdout and Stderr, when set, also receive the command's output as it
	// is produced.
	Stdout io.Writer
	Stderr io.Writer
}

func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+len(c.Args)+1)
	parts = append(parts, c.Env...)
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// WithEnv returns a copy of c with key=value added.
func (c Command) WithEnv(key, value string) Command {
	env := make([]string, len(c.Env), len(c.Env)+1)
	copy(env, c.Env)
	c.Env = append(env, key+"="+value)
	return c
}

// Runner runs cmd to completion and returns its standard output. A non-zero
// exit is a *CommandError; a command that cannot be started is an *IOError.
type Runner func(ctx context.Context, cmd Command) ([]byte, error)

// Exec runs commands with os/exec. Standard error is captured.
func Exec(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = tee(&stdout, cmd.Stdout)
	c.Stderr = tee(&stderr, cmd.Stderr)
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), &CommandError{
				Command:  cmd.String(),
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}
		}
		return nil, &IOError{Op: "exec", Path: cmd.Name, Err: err}
	}
	return stdout.Bytes(), nil
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
