package main

import (
	"os"

	"github.com/rustyeddy/lotbook/cmd/lotbook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
