package main

import (
	"os"

	"github.com/ashmarin/covermatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
