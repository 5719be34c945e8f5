package main

import (
	"os"

	"github.com/palettehq/artmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
