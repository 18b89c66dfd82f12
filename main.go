package main

import (
	"os"

	"psr-prepare/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
