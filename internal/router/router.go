// Package router delivers accepted messages into per-recipient mailboxes.
// Each recipient owns an independent ordered channel; a consumer draining
// one mailbox never sees, nor disturbs, another recipient's messages.
package router

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ezchajim/azilut/internal/model"
)

// mailbox is one recipient's unbounded FIFO queue. wake carries at most
// one pending notification; receivers re-arm it while the queue stays
// non-empty so no consumer sleeps through an arrival.
type mailbox struct {
	mu    sync.Mutex
	queue []*model.Message
	wake  chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{wake: make(chan struct{}, 1)}
}

func (m *mailbox) notify() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *mailbox) push(msg *model.Message) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	m.mu.Unlock()
	m.notify()
}

// pushFront requeues a message taken but not consumed, preserving FIFO.
func (m *mailbox) pushFront(msg *model.Message) {
	m.mu.Lock()
	m.queue = append([]*model.Message{msg}, m.queue...)
	m.mu.Unlock()
	m.notify()
}

func (m *mailbox) pop() (*model.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil, false
	}
	msg := m.queue[0]
	m.queue = m.queue[1:]
	if len(m.queue) > 0 {
		m.notify()
	}
	return msg, true
}

func (m *mailbox) depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Router owns the mailboxes. Mailboxes are created on first use, so
// delivery cannot fail on an unknown recipient. Safe for concurrent
// delivery and draining.
type Router struct {
	mu        sync.Mutex
	mailboxes map[string]*mailbox
	logger    *zap.Logger
}

// New creates a router. A nil logger disables logging.
func New(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		mailboxes: make(map[string]*mailbox),
		logger:    logger,
	}
}

func (r *Router) mailbox(recipientID string) *mailbox {
	r.mu.Lock()
	defer r.mu.Unlock()
	mb, ok := r.mailboxes[recipientID]
	if !ok {
		mb = newMailbox()
		r.mailboxes[recipientID] = mb
	}
	return mb
}

// Deliver places the message into the mailbox keyed by its recipient.
// Never blocks.
func (r *Router) Deliver(msg *model.Message) {
	r.mailbox(msg.RecipientID).push(msg)
	r.logger.Debug("message delivered",
		zap.String("message_id", msg.ID),
		zap.String("sender", msg.SenderID),
		zap.String("recipient", msg.RecipientID),
	)
}

// Receive removes and returns the oldest message for the recipient,
// suspending while the mailbox is empty. It returns ctx.Err when the
// caller stops waiting; arrivals for other recipients never wake it.
func (r *Router) Receive(ctx context.Context, recipientID string) (*model.Message, error) {
	mb := r.mailbox(recipientID)
	for {
		if msg, ok := mb.pop(); ok {
			return msg, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-mb.wake:
		}
	}
}

// Drain yields the recipient's messages in arrival order, removing each
// as it is produced. The sequence is lazy and unbounded: it suspends on an
// empty mailbox and ends only when ctx is cancelled, closing the returned
// channel. Each call drains the same mailbox afresh. A message taken but
// not handed over before cancellation is requeued, never dropped.
func (r *Router) Drain(ctx context.Context, recipientID string) <-chan *model.Message {
	out := make(chan *model.Message)
	mb := r.mailbox(recipientID)
	go func() {
		defer close(out)
		for {
			msg, err := r.Receive(ctx, recipientID)
			if err != nil {
				return
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				mb.pushFront(msg)
				return
			}
		}
	}()
	return out
}

// Pending reports how many messages wait for the recipient.
func (r *Router) Pending(recipientID string) int {
	return r.mailbox(recipientID).depth()
}
