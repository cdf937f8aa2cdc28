// Command fitviz-events publishes domain events from the command line,
// for smoke-testing broker and topic wiring.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
