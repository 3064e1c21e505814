package main

import (
	"os"

	"github.com/cratesift/cratesift/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
