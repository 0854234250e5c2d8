// SPDX-License-Identifier: MIT

// Command lvsym detects the symmetry of 0/1 and mixed-integer programs
// described in YAML and reports how each orbit component is handled.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
