package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joeydtaylor/structura/pkg/builder"
	"github.com/joeydtaylor/structura/pkg/contrib"
)

// Writes a gzip-compressed record stream to a file using an isolated
// engine, then drains it. Decompress with `zcat app.log.gz`.
func main() {
	out, err := os.Create("app.log.gz")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	engine := builder.NewEngine()
	if err := engine.Configure(
		builder.EngineWithServiceName("compressed-demo"),
		builder.EngineWithLogLevel("DEBUG"),
		builder.EngineWithOutput(out),
		builder.EngineWithCompression(builder.CompressGzip),
		builder.EngineWithQueueCapacity(256),
		builder.EngineWithEnqueueTimeout(2*time.Second),
	); err != nil {
		fmt.Fprintf(os.Stderr, "configure: %v\n", err)
		os.Exit(1)
	}

	log, err := engine.GetLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get logger: %v\n", err)
		os.Exit(1)
	}

	_ = contrib.APIRequest(log, "GET", "/users/42", 200, 12.5, "request_id", "req-1")
	_ = contrib.DBQuery(log, "SELECT", "users", 3.2, "request_id", "req-1")
	_ = contrib.DBQuery(log, "UPDATE", "sessions", 1450.0, "request_id", "req-1")
	_ = contrib.AuthEvent(log, "login", "alice", true, "request_id", "req-1")
	_ = contrib.AuthEvent(log, "login", "mallory", false, "request_id", "req-2")

	if err := engine.Shutdown(5 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
	}
}
