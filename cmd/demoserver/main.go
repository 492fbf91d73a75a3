// Command demoserver starts a local JSON echo server to point reqs at.
// Usage: go run ./cmd/demoserver [port]
// Default port: 9999
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/raysh454/reqs/internal/demoserver"
	"github.com/raysh454/reqs/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()

	logger, err := logging.New("demoserver", logging.Config{Level: "info", Output: os.Stderr})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			logger.Error("invalid port", logging.Field{Key: "port", Value: os.Args[1]})
			os.Exit(2)
		}
		cfg.Port = port
	}

	fmt.Printf("reqs demo server on http://localhost:%d\n", cfg.Port)
	fmt.Println("  /get /post /put /patch /delete /anything   echo the request as JSON")
	fmt.Println("  /status/{code}                              reply with that status")
	fmt.Println("  /delay/{ms}                                 echo after a delay")
	fmt.Println("  /text                                       plain text, not JSON")
	fmt.Println("  /ws/requests                                websocket feed of echoed requests")
	fmt.Println("  /swagger/index.html                         API docs")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := demoserver.NewDemoServer(cfg, logger)
	if err := server.Start(ctx); err != nil {
		logger.Error("server error", logging.Field{Key: "error", Value: err})
		stop()
		os.Exit(1)
	}
}
