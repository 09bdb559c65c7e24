package workflowtest_test

import (
	"bytes"
	"context"
	"io"

	"github.com/arthur-debert/alfredwf/pkg/process"
)

// stubProcess stands in for the real process so nothing exits or runs.
type stubProcess struct {
	args       []string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exits      []int
	calls      [][]string
	callStatus int
}

func (s *stubProcess) Exit(status int) { s.exits = append(s.exits, status) }

func (s *stubProcess) Call(_ context.Context, cmd []string, _ ...process.CallOption) (int, error) {
	s.calls = append(s.calls, cmd)
	return s.callStatus, nil
}

func (s *stubProcess) Args() []string    { return s.args }
func (s *stubProcess) Stdout() io.Writer { return &s.stdout }
func (s *stubProcess) Stderr() io.Writer { return &s.stderr }
