package main

import (
	"fmt"
	"os"

	"github.com/DoyleJ11/fracmatch/cmd/fracmatch/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
