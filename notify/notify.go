// Package notify delivers confirmations out of band. Nothing in here is allowed
// to fail or slow down the request that produced a message.
package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	KindUserRegistered = "user.registered"
	KindOrderCreated   = "order.created"
	KindOrderCancelled = "order.cancelled"
)

type Message struct {
	Kind      string    `json:"kind"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	OrderID   uint      `json:"order_id,omitempty"`
	Total     string    `json:"total,omitempty"`
	QueuedAt  time.Time `json:"queued_at"`
}

// Sink is one delivery channel.
type Sink interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Dispatcher fans messages out to its sinks from a single background worker.
type Dispatcher struct {
	queue       chan Message
	sinks       []Sink
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(queueSize int, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		queue:       make(chan Message, queueSize),
		sinks:       sinks,
		sendTimeout: 10 * time.Second,
		done:        make(chan struct{}),
	}
	go d.run()
	return d
}

// Notify queues msg without blocking. A full queue or a closed dispatcher
// drops the message.
func (d *Dispatcher) Notify(msg Message) {
	if msg.QueuedAt.IsZero() {
		msg.QueuedAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Printf("⚠️ notify: dispatcher closed, dropping %s for %s", msg.Kind, msg.Recipient)
		return
	}
	select {
	case d.queue <- msg:
	default:
		log.Printf("⚠️ notify: queue full, dropping %s for %s", msg.Kind, msg.Recipient)
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		for _, sink := range d.sinks {
			d.deliver(sink, msg)
		}
	}
}

func (d *Dispatcher) deliver(sink Sink, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ notify: sink %s panicked: %v", sink.Name(), r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()
	if err := sink.Send(ctx, msg); err != nil {
		log.Printf("❌ notify: sink %s failed for %s: %v", sink.Name(), msg.Kind, err)
	}
}

// Close stops accepting messages, waits for the queue to drain and closes any
// sink that holds resources.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done

	var firstErr error
	for _, sink := range d.sinks {
		if closer, ok := sink.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
