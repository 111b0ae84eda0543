// Command marketctl runs one-off maintenance tasks against the marketplace
// store: schema migrations, seeding and secret generation. It reads the
// same environment variables as the server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(openStore).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
