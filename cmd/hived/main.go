// Command hived bootstraps the actor runtime: it loads configuration, wires
// logging and metrics, starts the dispatcher worker pool, and blocks until
// asked to shut down.
package main

import (
	"fmt"
	"os"

	"hive/cmd/hived/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
