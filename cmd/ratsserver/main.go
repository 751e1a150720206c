package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/arl/statsviz"
	"github.com/charmbracelet/log"

	"rats-server/server"
)

const (
	exitInvalidPort = 1
	exitListen      = 6
	exitUsage       = 16

	maxConnsCeiling = 10000
)

func main() {
	maxConns, greeting, port := parseArgs(os.Args[1:])

	cfg := LoadConfig()
	logger := newLogger(cfg.LogLevel)

	if cfg.DebugAddr != "" {
		startDebugServer(logger, cfg.DebugAddr)
	}

	if _, err := net.LookupPort("tcp", port); err != nil {
		fmt.Fprintln(os.Stderr, "ratsserver: port invalid")
		os.Exit(exitInvalidPort)
	}

	srv := server.NewTCPServer(server.Config{
		MaxConns: maxConns,
		Greeting: greeting,
		Logger:   logger,
	})

	boundPort, err := srv.Listen(port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ratsserver: unable to listen on given port %q\n", port)
		os.Exit(exitListen)
	}

	// Report the actual bound port so an ephemeral request (0) is usable.
	fmt.Fprintf(os.Stderr, "%d\n", boundPort)

	go func() {
		if err := srv.Serve(); err != nil {
			logger.Fatalf("serve failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, os.Interrupt, syscall.SIGTERM)

	for sig := range sigChan {
		if sig == syscall.SIGHUP {
			// Operator-triggered statistics snapshot.
			fmt.Fprint(os.Stderr, srv.Stats().Snapshot())
			continue
		}
		logger.Info("shutting down")
		srv.Stop()
		return
	}
}

func parseArgs(args []string) (maxConns int, greeting, port string) {
	if len(args) < 2 || len(args) > 3 {
		dieUsage()
	}
	maxConns, ok := parseMaxConns(args[0])
	if !ok {
		dieUsage()
	}
	greeting = args[1]
	port = "0"
	if len(args) == 3 {
		port = args[2]
	}
	return maxConns, greeting, port
}

// parseMaxConns accepts a plain non-negative integer up to the
// ceiling; anything with leading whitespace or trailing junk fails.
func parseMaxConns(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > maxConnsCeiling {
		return 0, false
	}
	return v, true
}

func dieUsage() {
	fmt.Fprintln(os.Stderr, "Usage: ./ratsserver maxconns greeting [portnum]")
	os.Exit(exitUsage)
}

func newLogger(level string) *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetPrefix("ratsserver")
	logger.SetReportTimestamp(true)

	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// startDebugServer exposes live runtime metrics for operators on a
// separate diagnostic address; nothing on the game wire depends on it.
func startDebugServer(logger *log.Logger, addr string) {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		logger.Errorf("debug server disabled: %v", err)
		return
	}
	go func() {
		logger.Infof("debug metrics at http://%s/debug/statsviz/", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Errorf("debug server stopped: %v", err)
		}
	}()
}
