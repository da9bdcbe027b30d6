package notify

import (
	"context"
	"log"
	"time"
)

// Dispatcher decouples order creation from message delivery. Enqueue
// never blocks the caller; the Run loop sends with its own timeout and
// swallows failures into the log, so a broken gateway cannot affect a
// committed order.
type Dispatcher struct {
	notifier Notifier
	queue    chan Message
	timeout  time.Duration
}

func NewDispatcher(notifier Notifier, buffer int, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		queue:    make(chan Message, buffer),
		timeout:  timeout,
	}
}

// Enqueue hands a message to the dispatch loop. When the queue is full
// the message is dropped: confirmations are best-effort.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.queue <- msg:
	default:
		log.Printf("notify: queue full, dropping confirmation for order %s", msg.OrderNumber)
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	log.Println("Notification dispatcher started")

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.queue:
			d.send(msg)
		}
	}
}

func (d *Dispatcher) send(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.notifier.Send(ctx, msg); err != nil {
		log.Printf("notify: failed to send confirmation for order %s: %v", msg.OrderNumber, err)
	}
}
