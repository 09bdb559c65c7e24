package workflow

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/alfredwf/pkg/config"
	"github.com/arthur-debert/alfredwf/pkg/environ"
	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/feedback"
	"github.com/arthur-debert/alfredwf/pkg/filesystem"
	"github.com/arthur-debert/alfredwf/pkg/infoplist"
	"github.com/arthur-debert/alfredwf/pkg/logging"
	"github.com/arthur-debert/alfredwf/pkg/paths"
	"github.com/arthur-debert/alfredwf/pkg/process"
	"github.com/arthur-debert/alfredwf/pkg/types"
	"github.com/arthur-debert/alfredwf/pkg/version"
	"github.com/rs/zerolog"
)

// Workflow is a running launcher workflow.
type Workflow struct {
	environ environ.Environ
	cfg     *config.Env
	proc    process.Process
	fs      types.FS
	paths   paths.Paths
	dir     string
	ctx     context.Context

	logger      zerolog.Logger
	loggerReady bool
	logFile     io.Closer

	info       *infoplist.Info
	serializer string
	settings   *Settings
	feedback   *feedback.Feedback
	magic      map[string]MagicAction
}

// New builds a Workflow. Inputs not given as options default to the running
// program: the process environment, os.Getwd, the OS filesystem.
func New(opts ...Option) (*Workflow, error) {
	wf := &Workflow{
		feedback: feedback.New(),
	}
	for _, opt := range opts {
		opt(wf)
	}

	if wf.environ == nil {
		wf.environ = environ.FromOS()
	}
	if wf.proc == nil {
		wf.proc = process.System()
	}
	if wf.fs == nil {
		wf.fs = filesystem.NewOS()
	}
	if wf.paths == nil {
		wf.paths = paths.New("")
	}
	if wf.ctx == nil {
		wf.ctx = context.Background()
	}
	if wf.dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		wf.dir = cwd
	}
	if wf.cfg == nil {
		cfg, err := config.LoadFS(wf.environ, wf.fs, wf.dir)
		if err != nil {
			return nil, err
		}
		wf.cfg = cfg
	}
	wf.serializer = wf.cfg.Options.Serializer
	wf.magic = defaultMagic()

	return wf, nil
}

// Dir returns the workflow directory.
func (wf *Workflow) Dir() string { return wf.dir }

// Config returns the environment object.
func (wf *Workflow) Config() *config.Env { return wf.cfg }

// Environ returns the environment the workflow was built from.
func (wf *Workflow) Environ() environ.Environ { return wf.environ }

// Process returns the host process.
func (wf *Workflow) Process() process.Process { return wf.proc }

// Debugging reports whether the launcher's debugger is open.
func (wf *Workflow) Debugging() bool { return wf.cfg.Debug }

// WorkflowFile returns the path of name inside the workflow directory.
func (wf *Workflow) WorkflowFile(name string) string {
	return filepath.Join(wf.dir, name)
}

// Info returns the parsed info.plist. The result is cached.
func (wf *Workflow) Info() (*infoplist.Info, error) {
	if wf.info != nil {
		return wf.info, nil
	}
	info, err := infoplist.Load(wf.fs, wf.WorkflowFile(infoplist.Filename))
	if err != nil {
		return nil, err
	}
	wf.info = info
	return info, nil
}

// BundleID returns the workflow's bundle identifier: the launcher's value,
// else the one in info.plist, else "".
func (wf *Workflow) BundleID() string {
	if wf.cfg.BundleID != "" {
		return wf.cfg.BundleID
	}
	if info, err := wf.Info(); err == nil {
		return info.BundleID
	}
	return ""
}

// Name returns the workflow's name, resolved like BundleID.
func (wf *Workflow) Name() string {
	if wf.cfg.Name != "" {
		return wf.cfg.Name
	}
	if info, err := wf.Info(); err == nil {
		return info.Name
	}
	return ""
}

// Version returns the workflow version from the version file, else from
// info.plist.
func (wf *Workflow) Version() (*version.Version, error) {
	path := wf.WorkflowFile(version.Filename)
	if filesystem.Exists(wf.fs, path) {
		return version.ReadFile(wf.fs, path)
	}
	if info, err := wf.Info(); err == nil && info.Version != "" {
		return version.Parse(info.Version)
	}
	return nil, errors.New(errors.ErrVersionNotFound, "workflow has no version").
		WithDetail("dir", wf.dir)
}

// Args returns the command-line arguments without the program name.
func (wf *Workflow) Args() []string {
	args := wf.proc.Args()
	if len(args) <= 1 {
		return []string{}
	}
	return args[1:]
}

// Logger returns the workflow logger, writing to LogFile() and, while
// debugging, to stderr.
func (wf *Workflow) Logger() zerolog.Logger {
	if wf.loggerReady {
		return wf.logger
	}
	wf.loggerReady = true

	var file io.Writer
	if path, err := wf.LogFile(); err == nil {
		if f, err := wf.fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			wf.logFile = f
			file = f
		}
	}
	wf.logger = logging.NewWorkflowLogger(wf.proc.Stderr(), file, wf.BundleID(), wf.cfg.Debug)
	if level, err := zerolog.ParseLevel(wf.cfg.Options.LogLevel); err == nil && !wf.cfg.Debug {
		wf.logger = wf.logger.Level(level)
	}
	return wf.logger
}

// Close releases the log file.
func (wf *Workflow) Close() error {
	if wf.logFile == nil {
		return nil
	}
	err := wf.logFile.Close()
	wf.logFile = nil
	wf.loggerReady = false
	return err
}

// Open hands path to the system "open" command.
func (wf *Workflow) Open(path string) error {
	status, err := wf.proc.Call(wf.ctx, []string{"open", path})
	if err != nil {
		return err
	}
	if status != 0 {
		return errors.Newf(errors.ErrCommand, "open exited with status %d", status).
			WithDetail("path", path)
	}
	return nil
}

// NewItem adds a feedback item.
func (wf *Workflow) NewItem(title string) *feedback.Item {
	return wf.feedback.NewItem(title)
}

// SendFeedback writes pending items to stdout and clears them.
func (wf *Workflow) SendFeedback() error {
	_, err := wf.feedback.WriteTo(wf.proc.Stdout())
	wf.feedback.Clear()
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write feedback")
	}
	return nil
}
