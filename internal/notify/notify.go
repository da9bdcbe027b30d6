// Package notify delivers best-effort order confirmations. Nothing in
// here may ever fail an order: senders report errors, the dispatcher
// logs and drops them.
package notify

import (
	"context"
	"sync"
)

type Message struct {
	Destination string `json:"destination"`
	Body        string `json:"body"`
	OrderNumber string `json:"orderNumber"`
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Recorder is an in-memory Notifier. It backs tests and doubles as the
// sender when no broker is configured in development.
type Recorder struct {
	mu   sync.Mutex
	sent []Message
	// Fail, when set, is returned from every Send.
	Fail error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(_ context.Context, msg Message) error {
	if r.Fail != nil {
		return r.Fail
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}
