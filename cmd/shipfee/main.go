package main

import (
	"os"

	"shipfee/cmd/shipfee/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
