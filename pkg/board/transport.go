package board

import (
	"context"
	"encoding/json"
	"sync"
)

// Commands carried by messages to the rendering client.
const (
	// CommandInit delivers a complete option document.
	CommandInit = "init"

	// CommandInitData delivers the initial content of one data provider.
	CommandInitData = "initData"

	// CommandUpdateData replaces the content of an already transmitted
	// provider without re-sending the option document.
	CommandUpdateData = "updateData"
)

// Message is one unit handed to the transport. For data commands Serial is
// the provider's data serial; for init commands it counts the board's
// emissions.
type Message struct {
	Command string          `json:"command"`
	Serial  int             `json:"serial"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Transport delivers messages to the rendering client.
type Transport interface {
	Send(ctx context.Context, m Message) error
}

// MemoryTransport buffers messages in memory. It backs tests and the
// serving layer, which drains buffered messages into HTTP responses.
type MemoryTransport struct {
	mu   sync.Mutex
	msgs []Message
}

// NewMemoryTransport creates an empty in-memory transport.
func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{}
}

// Send appends the message to the buffer.
func (t *MemoryTransport) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = append(t.msgs, m)
	return nil
}

// Messages returns a copy of the buffered messages.
func (t *MemoryTransport) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Message{}, t.msgs...)
}

// Last returns the most recent message, if any.
func (t *MemoryTransport) Last() (Message, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.msgs) == 0 {
		return Message{}, false
	}
	return t.msgs[len(t.msgs)-1], true
}

// Drain returns the buffered messages and clears the buffer.
func (t *MemoryTransport) Drain() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	msgs := t.msgs
	t.msgs = nil
	return msgs
}
