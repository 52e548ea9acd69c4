package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"business_selector/presentation/terminal"
)

func main() {
	os.Exit(run())
}

// run - returns the process exit code so deferred cleanup happens before exiting
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term, err := terminal.NewTerminalInterface()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := term.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close browser session: %v\n", err)
		}
	}()

	if err := term.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
