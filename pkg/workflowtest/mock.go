package workflowtest

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/arthur-debert/alfredwf/pkg/process"
)

// Call is one intercepted subprocess invocation.
type Call struct {
	Cmd     []string
	Options process.CallOptions
}

// Mock is a process.Process that, while entered, records exit and
// subprocess calls, replaces argv and captures stderr. Anything not
// intercepted goes to the underlying process.
type Mock struct {
	mu sync.Mutex

	underlying    process.Process
	argv          []string
	interceptExit bool
	interceptCall bool
	captureStderr bool

	active     bool
	exitOn     bool
	callOn     bool
	argvOn     bool
	stderrBuf  *bytes.Buffer
	calls      []Call
	exitCalled bool
	exitStatus int
	stderrText string
}

// MockOption configures a Mock.
type MockOption func(*Mock)

// MockArgv replaces the command-line arguments while entered.
func MockArgv(argv []string) MockOption {
	return func(m *Mock) { m.argv = append([]string(nil), argv...) }
}

// MockExit toggles exit interception (default on).
func MockExit(on bool) MockOption {
	return func(m *Mock) { m.interceptExit = on }
}

// MockCall toggles subprocess interception (default on).
func MockCall(on bool) MockOption {
	return func(m *Mock) { m.interceptCall = on }
}

// MockStderr toggles stderr capture (default off).
func MockStderr(on bool) MockOption {
	return func(m *Mock) { m.captureStderr = on }
}

// MockProcess sets the process non-intercepted operations go to.
func MockProcess(p process.Process) MockOption {
	return func(m *Mock) { m.underlying = p }
}

// NewMock returns an inactive Mock.
func NewMock(opts ...MockOption) *Mock {
	m := &Mock{
		interceptExit: true,
		interceptCall: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.underlying == nil {
		m.underlying = process.System()
	}
	return m
}

// Enter activates interception. Entering an active Mock does nothing.
func (m *Mock) Enter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active {
		return
	}
	m.active = true
	m.exitOn = m.interceptExit
	m.callOn = m.interceptCall
	m.argvOn = len(m.argv) > 0
	if m.captureStderr {
		m.stderrBuf = &bytes.Buffer{}
	}
}

// Leave deactivates interception. Captured stderr stays readable through
// StderrText. Only what Enter switched on is switched off.
func (m *Mock) Leave() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exitOn = false
	m.callOn = false
	m.argvOn = false
	if m.stderrBuf != nil {
		m.stderrText = m.stderrBuf.String()
		m.stderrBuf = nil
	}
	m.active = false
}

// Run enters, calls fn and leaves, also when fn panics.
func (m *Mock) Run(fn func(m *Mock)) {
	m.Enter()
	defer m.Leave()
	fn(m)
}

// Active reports whether the Mock is entered.
func (m *Mock) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Exit records status when intercepting, otherwise exits for real.
func (m *Mock) Exit(status int) {
	m.mu.Lock()
	if m.exitOn {
		m.exitCalled = true
		m.exitStatus = status
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()
	m.underlying.Exit(status)
}

// Call records cmd and its options when intercepting and reports success
// without running anything.
func (m *Mock) Call(ctx context.Context, cmd []string, opts ...process.CallOption) (int, error) {
	m.mu.Lock()
	if m.callOn {
		m.calls = append(m.calls, Call{
			Cmd:     append([]string(nil), cmd...),
			Options: process.NewCallOptions(opts...),
		})
		m.mu.Unlock()
		return 0, nil
	}
	m.mu.Unlock()
	return m.underlying.Call(ctx, cmd, opts...)
}

// Args returns the replacement argv while entered, else the real one.
func (m *Mock) Args() []string {
	m.mu.Lock()
	if m.argvOn {
		args := append([]string(nil), m.argv...)
		m.mu.Unlock()
		return args
	}
	m.mu.Unlock()
	return m.underlying.Args()
}

// Stdout is never intercepted.
func (m *Mock) Stdout() io.Writer {
	return m.underlying.Stdout()
}

// Stderr returns the capture buffer while capturing.
func (m *Mock) Stderr() io.Writer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stderrBuf != nil {
		return lockedWriter{mu: &m.mu, w: m.stderrBuf}
	}
	return m.underlying.Stderr()
}

// Cmd returns the command of the last intercepted call, or nil.
func (m *Mock) Cmd() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	return append([]string(nil), m.calls[len(m.calls)-1].Cmd...)
}

// CallOptions returns the options of the last intercepted call.
func (m *Mock) CallOptions() process.CallOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return process.CallOptions{}
	}
	return m.calls[len(m.calls)-1].Options
}

// Calls returns every intercepted call in order.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// ExitCalled reports whether an intercepted exit happened.
func (m *Mock) ExitCalled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exitCalled
}

// ExitStatus returns the status of the last intercepted exit.
func (m *Mock) ExitStatus() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exitStatus
}

// StderrText returns stderr output captured during the last scope, or the
// output so far while still capturing.
func (m *Mock) StderrText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stderrBuf != nil {
		return m.stderrBuf.String()
	}
	return m.stderrText
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
