// Package paths resolves where a workflow keeps its files.
//
// Every workflow gets two directories keyed by its bundle identifier:
//
//   - Data: <data-home>/Alfred 2/Workflow Data/<bundleid> (settings, stored data)
//   - Cache: <cache-home>/com.runningwithcrayons.Alfred-2/Workflow Data/<bundleid>
//
// With an explicit home directory, data-home is <home>/Library/Application Support
// and cache-home is <home>/Library/Caches, which is the launcher's own layout.
// Without one the XDG base directories are used; on macOS those resolve to the
// same Library folders.
//
// # Usage
//
//	p := paths.New("")
//	data := p.DataDir("net.example.wf")
//	cache := p.CacheDir("net.example.wf")
package paths
