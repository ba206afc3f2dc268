// Command lessonkit runs the lesson exercises from the command line: prime
// search, word counts, the todo list, roster, books and bank ledger, and the
// password, text, date and file helpers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
