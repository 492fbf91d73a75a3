// Command reqs sends one HTTP request per URL concurrently and prints each
// JSON response as it arrives.
//
// Usage: reqs [-X METHOD] [-H "Name:Value"]... [-d DATA] URL [URL...]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/raysh454/reqs/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := app.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
