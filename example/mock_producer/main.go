package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeydtaylor/structura/pkg/builder"
)

// A small producer that exercises the whole engine: heartbeat, job scopes
// with progress and a simulated failure rate, and a graceful drain on
// SIGINT/SIGTERM.
func main() {
	if err := builder.Configure(
		builder.EngineWithServiceName("mock-log-producer"),
		builder.EngineWithLogLevel("INFO"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "configure: %v\n", err)
		os.Exit(1)
	}

	log, err := builder.GetLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get logger: %v\n", err)
		os.Exit(1)
	}

	log.StartHeartbeat(30 * time.Second)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

loop:
	for {
		select {
		case <-stop:
			break loop
		default:
			simulateWork(log)
			time.Sleep(time.Duration(1000+rand.Intn(1000)) * time.Millisecond)
		}
	}

	if err := builder.Shutdown(5 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
	}
}

func simulateWork(log builder.Logger) {
	job := builder.NewJobLogger(log, "ingest_job",
		builder.JobWithFields("input", "s3://bucket/demo"),
	)

	err := job.Run(func(job *builder.Job) error {
		for _, p := range []int{10, 40, 70, 100} {
			time.Sleep(800 * time.Millisecond)
			_ = job.Progress("step", "ingest", "progress", p)
		}

		time.Sleep(500 * time.Millisecond)
		if rand.Intn(3) == 0 {
			return errors.New("simulated ingest error")
		}

		job.SetFinalData(builder.Fields{
			"records_processed": 1234,
			"status_detail":     "all clear",
		})
		return nil
	})
	if err != nil {
		// The failure record is already on the stream; business code may
		// still react to the error itself.
		fmt.Fprintf(os.Stderr, "job %s failed: %v\n", job.JobID(), err)
	}
}
