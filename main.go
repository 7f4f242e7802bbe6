package main

import (
	"os"

	"github.com/aipo-io/cli/cmd/cli"
)

func main() {
	if err := cli.GetCommandOptions().Execute(); err != nil {
		os.Exit(1)
	}
}
