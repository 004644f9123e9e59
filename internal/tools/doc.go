// Package tools wraps the external binaries splice orchestrates.
//
// Every tool is driven through the same shape: a small struct holding the
// binary name, an injectable command runner so tests never shell out, and
// methods that skip work when the expected output file already exists.
package tools
