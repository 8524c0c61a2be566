// Command consulta serves and runs dynamic filter queries.
package main

import (
	"os"

	"github.com/roach88/consulta/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
