package main

import (
	"os"

	"github.com/teranos/classgen/cmd/classgen/commands"
	"github.com/teranos/classgen/display"
	"github.com/teranos/classgen/logger"
)

func main() {
	err := commands.NewRootCmd().Execute()
	logger.Cleanup()
	if err != nil {
		display.Error(os.Stderr, err)
		os.Exit(1)
	}
}
