package logger

import "time"

const defaultHeartbeatInterval = 30 * time.Second

// StartHeartbeat launches a background goroutine emitting a liveness record
// every interval. Starting twice is a no-op while the first heartbeat runs.
func (l *Logger) StartHeartbeat(interval time.Duration) {
	if interval <= 0 {
		interval = defaultHeartbeatInterval
	}

	l.hbMu.Lock()
	defer l.hbMu.Unlock()
	if l.hbStop != nil {
		return
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	l.hbStop = stop
	l.hbDone = done
	go l.runHeartbeat(interval, stop, done)

	_ = l.Info("Heartbeat started",
		"event", "heartbeat_started",
		"interval_s", interval.Seconds(),
	)
}

// StopHeartbeat stops the heartbeat goroutine and waits for it to exit.
// Safe to call when no heartbeat is running.
func (l *Logger) StopHeartbeat() {
	l.hbMu.Lock()
	defer l.hbMu.Unlock()
	if l.hbStop == nil {
		return
	}

	close(l.hbStop)
	<-l.hbDone
	l.hbStop = nil
	l.hbDone = nil

	_ = l.Info("Heartbeat stopped", "event", "heartbeat_stopped")
}

func (l *Logger) runHeartbeat(interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			_ = l.Info("Worker alive",
				"event", "heartbeat",
				"status", "healthy",
			)
		}
	}
}
