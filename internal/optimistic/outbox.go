package optimistic

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/bryokn/ClassiConnect/internal/entity"
)

var (
	// ErrMessageNotFound is returned by Retry for an unknown client id.
	ErrMessageNotFound = errors.New("optimistic: message not found")
	// ErrMessageNotFailed is returned by Retry when the message is not in
	// the Failed state.
	ErrMessageNotFailed = errors.New("optimistic: message is not failed")
)

type MessageState int

const (
	Sending MessageState = iota
	Delivered
	Failed
)

func (s MessageState) String() string {
	switch s {
	case Sending:
		return "sending"
	case Delivered:
		return "delivered"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// OutboxMessage is one chat message moving through the send lifecycle.
// Canonical is the server-returned message, set only once Delivered.
type OutboxMessage struct {
	ClientID   string
	Text       string
	ReceiverID string
	ListingID  string
	State      MessageState
	Canonical  *entity.ChatMessage
}

// SendFunc performs the actual network send and returns the stored
// message as the server recorded it.
type SendFunc func(ctx context.Context, text, receiverID, listingID string) (*entity.ChatMessage, error)

// Outbox keeps the ordered list of messages the user has tried to send
// for one conversation. A failed message stays in the list with an
// explicit retry affordance instead of being silently discarded.
type Outbox struct {
	mu       sync.Mutex
	send     SendFunc
	messages []*OutboxMessage
	byID     map[string]*OutboxMessage
}

func NewOutbox(send SendFunc) *Outbox {
	return &Outbox{
		send: send,
		byID: make(map[string]*OutboxMessage),
	}
}

// Send appends the message optimistically, attempts the network send and
// settles the state to Delivered or Failed.
func (o *Outbox) Send(ctx context.Context, text, receiverID, listingID string) *OutboxMessage {
	msg := &OutboxMessage{
		ClientID:   uuid.New().String(),
		Text:       text,
		ReceiverID: receiverID,
		ListingID:  listingID,
		State:      Sending,
	}

	o.mu.Lock()
	o.messages = append(o.messages, msg)
	o.byID[msg.ClientID] = msg
	o.mu.Unlock()

	o.attempt(ctx, msg)
	return msg
}

// Retry re-attempts a failed send. The message re-enters Sending and may
// fail again, keeping the retry affordance available.
func (o *Outbox) Retry(ctx context.Context, clientID string) (*OutboxMessage, error) {
	o.mu.Lock()
	msg, ok := o.byID[clientID]
	if !ok {
		o.mu.Unlock()
		return nil, ErrMessageNotFound
	}
	if msg.State != Failed {
		o.mu.Unlock()
		return nil, ErrMessageNotFailed
	}
	msg.State = Sending
	o.mu.Unlock()

	o.attempt(ctx, msg)
	return msg, nil
}

func (o *Outbox) attempt(ctx context.Context, msg *OutboxMessage) {
	canonical, err := o.send(ctx, msg.Text, msg.ReceiverID, msg.ListingID)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		msg.State = Failed
		return
	}
	msg.State = Delivered
	msg.Canonical = canonical
}

// Messages returns the outbox contents in send order.
func (o *Outbox) Messages() []*OutboxMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*OutboxMessage, len(o.messages))
	copy(out, o.messages)
	return out
}
