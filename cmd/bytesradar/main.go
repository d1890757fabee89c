// main.go is bytes-radar's program entry point. It only wires in the
// version string and delegates to the Cobra root command, keeping
// business logic inside internal/ and cmd/bytesradar/internal/cli for
// testability.
package main

import (
	"fmt"
	"os"

	"github.com/kenf1/bytes-radar/cmd/bytesradar/internal/cli"
)

// version defaults to "dev"; release builds override it via
// -ldflags "-X main.version=vX.Y.Z".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "bytesradar error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
