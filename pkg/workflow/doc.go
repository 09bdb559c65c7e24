// Package workflow is the runtime a launcher workflow is written against.
//
// A Workflow is assembled from explicit inputs rather than process globals:
//
//   - an environ.Environ with the launcher's alfred_* variables
//   - a *config.Env decoded from it (plus workflow.toml options)
//   - a process.Process for exit, subprocess calls, argv, stdout and stderr
//   - a types.FS and a paths.Paths for storage
//
// Any of them may be supplied through Options; the rest default to the
// running program. Tests supply all of them from pkg/workflowtest.
//
// # Usage
//
//	func main() {
//	    wf, err := workflow.New()
//	    if err != nil {
//	        fmt.Fprintln(os.Stderr, err)
//	        os.Exit(1)
//	    }
//	    wf.Run(func(wf *workflow.Workflow) error {
//	        wf.NewItem("Hello").Subtitle(strings.Join(wf.Args(), " "))
//	        return wf.SendFeedback()
//	    })
//	}
package workflow
