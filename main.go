package main

import (
	"os"

	"github.com/abhisek/recall/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
