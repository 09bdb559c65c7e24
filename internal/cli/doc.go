// Package cli implements the alfredwf command line.
package cli
