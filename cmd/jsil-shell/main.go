package main

import (
	"os"

	"github.com/jsil-dev/host-sdk/go/cmd/jsil-shell/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
