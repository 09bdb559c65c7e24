package process

import (
	"io"

	"github.com/arthur-debert/alfredwf/pkg/environ"
)

// CallOptions configures a subprocess invocation.
type CallOptions struct {
	Dir    string
	Env    environ.Environ
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CallOption mutates CallOptions.
type CallOption func(*CallOptions)

// NewCallOptions applies opts to a zero CallOptions.
func NewCallOptions(opts ...CallOption) CallOptions {
	var o CallOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDir runs the command in dir.
func WithDir(dir string) CallOption {
	return func(o *CallOptions) { o.Dir = dir }
}

// WithEnv replaces the command's environment.
func WithEnv(env environ.Environ) CallOption {
	return func(o *CallOptions) { o.Env = env }
}

// WithStdin connects r to the command's stdin.
func WithStdin(r io.Reader) CallOption {
	return func(o *CallOptions) { o.Stdin = r }
}

// WithStdout sends the command's stdout to w.
func WithStdout(w io.Writer) CallOption {
	return func(o *CallOptions) { o.Stdout = w }
}

// WithStderr sends the command's stderr to w.
func WithStderr(w io.Writer) CallOption {
	return func(o *CallOptions) { o.Stderr = w }
}
