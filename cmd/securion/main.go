package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nebstarmalala/securion-console/internal/cli"
	"github.com/nebstarmalala/securion-console/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
