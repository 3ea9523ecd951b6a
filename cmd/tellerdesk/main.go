package main

import (
	"os"

	"github.com/tellerdesk-dev/tellerdesk/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
