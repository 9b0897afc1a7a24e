// Command z3go inspects the libz3 installation used by the z3go package.
package main

import (
	"os"

	"github.com/obinnaokechukwu/z3go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
