// Package example demonstrates documentation rendering for go-docgen tests.
//
// NOTE: this package is a test fixture and is never imported by the tool.
package example

// Answer documents an exported constant.
const Answer = 42

// hidden constant should only appear with --private.
const internalConstant = 0

// Greeter produces greeting messages.
//
// Attributes:
//
//	Name (string): Display name used in greetings.
type Greeter struct {
	// Name is included to verify field documentation.
	Name string
}

// NewGreeter constructs a Greeter.
//
// Args:
//
//	name (string): Display name used in greetings.
//
// Returns:
//
//	greeter: Ready-to-use value.
func NewGreeter(name string) *Greeter {
	return &Greeter{Name: name}
}

// Greet returns a friendly message.
//
// Example:
//
//	>>> g := NewGreeter("dev")
//	>>> g.Greet()
//	"hello dev"
func (g *Greeter) Greet() string {
	return "hello " + g.Name
}

// Shout returns the greeting in upper case, mirroring the shell variant::
//
//	echo "HELLO ${NAME}"
//
// Raises:
//
//	never: the conversion cannot fail.
func (g *Greeter) Shout() string {
	out := []byte(g.Greet())
	for i, c := range out {
		if 'a' <= c && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}
