package main

import (
	"os"

	"github.com/vatly/vatly/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
