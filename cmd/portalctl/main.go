// Command portalctl runs maintenance tasks against the portal database and
// exposes the calculators on the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
