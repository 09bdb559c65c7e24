// Package process is the boundary between a workflow and its host process.
//
// A workflow never calls os.Exit, exec.Command, os.Args or os.Stderr
// directly. It is handed a Process, which the real program builds with
// System() and tests replace with a recorder (see pkg/workflowtest).
package process
