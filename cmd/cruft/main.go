package main

import (
	"os"

	"github.com/christokur/cruft/cmd/cruft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
