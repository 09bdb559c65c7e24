// Package types defines the interfaces shared across alfredwf packages:
// the filesystem abstraction and the storage path resolver.
package types
