package workflow

import (
	"fmt"

	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/logging"
)

// Run executes fn and ends the process through Process.Exit: status 0 on
// success, 1 when fn returns an error or panics. Magic arguments are handled
// before fn and skip it. The status is also returned, since a test Process
// records the exit instead of performing it.
func (wf *Workflow) Run(fn func(*Workflow) error) int {
	logger := wf.Logger()
	done := logging.LogOperationStart(logger, "run")

	status := 0
	if err := wf.run(fn); err != nil {
		status = 1
		wf.reportError(err)
	}

	done()
	if err := wf.Close(); err != nil {
		// The workflow logger writes to the file that just failed.
		stderrLogger := logging.NewWorkflowLogger(wf.proc.Stderr(), nil, wf.BundleID(), wf.cfg.Debug)
		stderrLogger.Debug().Err(err).Msg("Failed to close workflow log")
	}
	wf.proc.Exit(status)
	return status
}

func (wf *Workflow) run(fn func(*Workflow) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.ErrInternal, "panic: %v", r)
		}
	}()

	handled, msg, err := wf.HandleMagic()
	if err != nil {
		return err
	}
	if handled {
		if msg != "" {
			fmt.Fprintln(wf.proc.Stdout(), msg)
		}
		return nil
	}
	return fn(wf)
}

func (wf *Workflow) reportError(err error) {
	logger := wf.Logger()
	logger.Error().Err(err).Msg("Workflow failed")
	fmt.Fprintf(wf.proc.Stderr(), "ERROR: %v\n", err)

	if wf.cfg.Options.QuietErrors {
		return
	}
	name := wf.Name()
	if name == "" {
		name = "workflow"
	}
	wf.feedback.Clear()
	wf.NewItem(err.Error()).
		Subtitle(fmt.Sprintf("Error in workflow '%s'", name)).
		Valid(false).
		Icon(IconError, "")
	if sendErr := wf.SendFeedback(); sendErr != nil {
		logger.Error().Err(sendErr).Msg("Failed to send error feedback")
	}
}
