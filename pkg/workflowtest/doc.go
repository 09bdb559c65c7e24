// Package workflowtest sets up a simulated launcher environment for tests.
//
// A Fixture prepares everything a workflow expects when the launcher runs
// it: the alfred_* variables, an info.plist and optional version file in the
// workflow directory, a fresh config.Env and a process.Process that records
// exit and subprocess calls instead of performing them. TearDown reverts
// every change SetUp made.
//
//	f := workflowtest.Use(t, workflowtest.WithDir(dir), workflowtest.WithVersion("1.0"))
//	wf, err := f.NewWorkflow()
//	...
//	wf.Run(handler)
//	assert.True(t, f.ExitCalled())
//
// The fixture info.plist is linked from the package's testdata directory,
// or from a copy of it written under the temp directory when the source
// tree is not available at run time.
//
// A Mock is the process part alone.
//
// Fixtures that touch the process environment (the default) must not run
// in parallel tests.
package workflowtest
