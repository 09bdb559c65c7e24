package process

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/logging"
)

// Process is what a workflow needs from its host process.
type Process interface {
	// Exit ends the program with status. Test implementations record the
	// status and return.
	Exit(status int)

	// Call runs cmd to completion and returns its exit status. A command
	// that runs and fails is not an error; one that cannot be started is.
	Call(ctx context.Context, cmd []string, opts ...CallOption) (int, error)

	// Args returns the full command line, program name first.
	Args() []string

	// Stdout receives launcher feedback.
	Stdout() io.Writer

	// Stderr is shown in the launcher's debugger.
	Stderr() io.Writer
}

// Shims are the system functions a system Process delegates to.
type Shims struct {
	Exit    func(int)
	Command func(ctx context.Context, name string, args ...string) *exec.Cmd
	Args    func() []string
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewShims creates Shims with the real implementations
func NewShims() *Shims {
	return &Shims{
		Exit:    os.Exit,
		Command: exec.CommandContext,
		Args:    func() []string { return os.Args },
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

type system struct {
	shims *Shims
}

var _ Process = (*system)(nil)

// System returns the Process of the running program.
func System() Process {
	return New(NewShims())
}

// New returns a Process delegating to shims.
func New(shims *Shims) Process {
	return &system{shims: shims}
}

func (s *system) Exit(status int) {
	s.shims.Exit(status)
}

func (s *system) Call(ctx context.Context, cmd []string, opts ...CallOption) (int, error) {
	if len(cmd) == 0 {
		return -1, errors.New(errors.ErrInvalidInput, "empty command")
	}
	o := NewCallOptions(opts...)

	logging.LogCommand(logging.GetLogger("process"), cmd)

	c := s.shims.Command(ctx, cmd[0], cmd[1:]...)
	c.Dir = o.Dir
	if o.Env != nil {
		c.Env = o.Env.Pairs()
	}
	c.Stdin = o.Stdin
	c.Stdout = o.Stdout
	c.Stderr = o.Stderr

	err := c.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, errors.Wrapf(err, errors.ErrCommand, "failed to run %s", cmd[0])
}

func (s *system) Args() []string {
	args := s.shims.Args()
	out := make([]string, len(args))
	copy(out, args)
	return out
}

func (s *system) Stdout() io.Writer {
	return s.shims.Stdout
}

func (s *system) Stderr() io.Writer {
	return s.shims.Stderr
}
