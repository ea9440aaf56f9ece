package notify

import (
	"context"
	"log"
	"time"
)

// LogSink stands in for an email service: it writes the message to the log.
type LogSink struct {
	// Latency simulates a slow mail relay.
	Latency time.Duration
}

func (LogSink) Name() string { return "log" }

func (s LogSink) Send(ctx context.Context, msg Message) error {
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	log.Printf("📧 [EMAIL_SERVICE] to=%s subject=%q", msg.Recipient, msg.Subject)
	log.Printf("📧 [EMAIL_SERVICE] %s", msg.Body)
	return nil
}
