// Command pacsadmin administers the PACS platform from the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wizardpacs/adminkit/internal/cli"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], cli.Streams{}, cli.WithVersion(version))
	stop()
	os.Exit(code)
}
