package main

import (
	"fmt"
	"os"

	"github.com/rshade/voltwise/internal/cli"
	"github.com/rshade/voltwise/pkg/version"
)

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
