// Package subpkg verifies tree traversal picks up nested packages.
package subpkg

// Message exposes a sample constant for subpackage documentation tests.
const Message = "hi"
