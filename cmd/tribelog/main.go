package main

import (
	"fmt"
	"os"

	"github.com/gordon0907/ark-tribe-log/cmd/tribelog/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
