package workflow

import (
	"fmt"
	"sort"
	"strings"
)

// MagicPrefix marks an argument as a library command rather than a query.
const MagicPrefix = "workflow:"

// MagicAction is a built-in command triggered by "workflow:<keyword>".
type MagicAction struct {
	Keyword     string
	Description string
	// Run performs the action and returns a message for the user.
	Run func(wf *Workflow) (string, error)
}

func defaultMagic() map[string]MagicAction {
	actions := []MagicAction{
		{
			Keyword:     "delcache",
			Description: "Delete the workflow's cached data",
			Run: func(wf *Workflow) (string, error) {
				return "Deleted workflow cache", wf.ClearCache()
			},
		},
		{
			Keyword:     "deldata",
			Description: "Delete the workflow's stored data",
			Run: func(wf *Workflow) (string, error) {
				return "Deleted workflow data", wf.ClearData()
			},
		},
		{
			Keyword:     "delsettings",
			Description: "Delete the workflow's settings",
			Run: func(wf *Workflow) (string, error) {
				return "Deleted workflow settings", wf.ClearSettings()
			},
		},
		{
			Keyword:     "reset",
			Description: "Delete the workflow's settings, cache and data",
			Run: func(wf *Workflow) (string, error) {
				return "Reset workflow", wf.Reset()
			},
		},
		{
			Keyword:     "openlog",
			Description: "Open the workflow's log file",
			Run: func(wf *Workflow) (string, error) {
				path, err := wf.LogFile()
				if err != nil {
					return "", err
				}
				return "Opening workflow log file", wf.Open(path)
			},
		},
		{
			Keyword:     "opencache",
			Description: "Open the workflow's cache directory",
			Run: func(wf *Workflow) (string, error) {
				return openDir(wf, wf.CacheDir, "Opening workflow cache directory")
			},
		},
		{
			Keyword:     "opendata",
			Description: "Open the workflow's data directory",
			Run: func(wf *Workflow) (string, error) {
				return openDir(wf, wf.DataDir, "Opening workflow data directory")
			},
		},
		{
			Keyword:     "openworkflow",
			Description: "Open the workflow's root directory",
			Run: func(wf *Workflow) (string, error) {
				return "Opening workflow root directory", wf.Open(wf.Dir())
			},
		},
		{
			Keyword:     "version",
			Description: "Show the workflow's version",
			Run: func(wf *Workflow) (string, error) {
				v, err := wf.Version()
				if err != nil {
					return "This workflow has no version number", nil
				}
				return "Version: " + v.String(), nil
			},
		},
		{
			Keyword:     "magic",
			Description: "List the available magic arguments",
			Run: func(wf *Workflow) (string, error) {
				var lines []string
				for _, a := range wf.MagicActions() {
					lines = append(lines, fmt.Sprintf("%s%s: %s", MagicPrefix, a.Keyword, a.Description))
				}
				return strings.Join(lines, "\n"), nil
			},
		},
	}

	m := make(map[string]MagicAction, len(actions))
	for _, a := range actions {
		m[a.Keyword] = a
	}
	return m
}

func openDir(wf *Workflow, resolve func() (string, error), msg string) (string, error) {
	dir, err := resolve()
	if err != nil {
		return "", err
	}
	return msg, wf.Open(dir)
}

// RegisterMagic adds or replaces a magic action.
func (wf *Workflow) RegisterMagic(a MagicAction) {
	wf.magic[a.Keyword] = a
}

// MagicActions lists the registered actions sorted by keyword.
func (wf *Workflow) MagicActions() []MagicAction {
	out := make([]MagicAction, 0, len(wf.magic))
	for _, a := range wf.magic {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return out
}

// HandleMagic runs the first registered magic action found in Args.
// Unknown workflow:* arguments are left for the workflow.
func (wf *Workflow) HandleMagic() (handled bool, msg string, err error) {
	for _, arg := range wf.Args() {
		keyword, ok := strings.CutPrefix(strings.TrimSpace(arg), MagicPrefix)
		if !ok {
			continue
		}
		logger := wf.Logger()
		action, ok := wf.magic[keyword]
		if !ok {
			logger.Debug().Str("arg", arg).Msg("Unknown magic argument")
			continue
		}
		logger.Info().Str("magic", keyword).Msg("Running magic action")
		msg, err := action.Run(wf)
		return true, msg, err
	}
	return false, "", nil
}
