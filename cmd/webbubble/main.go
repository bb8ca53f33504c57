// WebBubble server entry point.
//
// Usage: webbubble [port]
//
// Takes exactly one optional positional argument, the TCP port. No
// flags, no environment variables (spec.md §6) — this intentionally
// does not use package flag the way cmd/duso does, since the CLI
// surface this program exposes is deliberately smaller than the
// teacher's.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ihave17bucks/webbubble/pkg/config"
	"github.com/ihave17bucks/webbubble/pkg/lang"
	"github.com/ihave17bucks/webbubble/pkg/logging"
	"github.com/ihave17bucks/webbubble/pkg/webserver"
)

const defaultPort = 8080

// demoScript mirrors the example program the original implementation
// hardcodes in its main(): the same routes, translated to the same
// grammar, except that /user takes an :id path parameter, so a fresh
// checkout has something to curl immediately.
const demoScript = `
route "/" {
    response "Welcome to WebBubble!"
}

route "/hello" {
    greeting = "Hello"
    name = "World"
    message = greeting + ", " + name + "!"
    response message
}

route "/calc" {
    x = 10
    y = 5
    sum = x + y
    product = x * y
    result = "Sum: " + sum + ", Product: " + product
    response result
}

route "/user/:id" {
    response "id=" + id
}

route "/about" {
    title = "About WebBubble"
    version = 1.0
    info = title + " v" + version
    response html {
        info
    }
}

route "/api/status" {
    status = "OK"
    uptime = 100
    response status
}
`

func resolvePort(args []string) int {
	if len(args) < 2 {
		return defaultPort
	}
	port, err := strconv.Atoi(args[1])
	if err != nil || port <= 0 || port > 65535 {
		fmt.Fprintf(os.Stderr, "Invalid port number. Using default: %d\n", defaultPort)
		return defaultPort
	}
	return port
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	port := resolvePort(args)

	program, err := lang.Parse(demoScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	cfg, err := config.Load(config.Discover(cwd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	server := webserver.New(program, webserver.Options{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		MinifyHTML:   cfg.MinifyHTML,
		Logger:       logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Printf("shutting down")
		cancel()
	}()

	if err := server.Serve(ctx, port); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	return 0
}
