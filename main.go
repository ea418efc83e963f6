package main

import (
	"fmt"
	"os"
)

// Version is stamped by the release workflow; "dev" for local builds.
var Version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "go-docgen:", err)
		os.Exit(1)
	}
}
