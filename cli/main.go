package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/blockverse-dao/bvdeploy/internal/cli"
	"github.com/blockverse-dao/bvdeploy/internal/config"
)

// Set via -ldflags at release time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}
