package domain

import "time"

// Event is a state change an aggregate wants durably applied. Events are an
// outbox for the persistence layer only; aggregates are never rebuilt from them.
type Event interface {
	EventName() string
}

type AccountCreated struct {
	AccountID string
	Email     string
	RoleID    string
	Salt      []byte
	Hash      []byte
}

type PasswordChanged struct {
	AccountID string
	Salt      []byte
	Hash      []byte
}

type RoleChanged struct {
	AccountID string
	RoleID    string
}

type RefreshTokenIssued struct {
	TokenID  string
	IssuedTo string
	Code     string
	Issued   time.Time
	Expiry   time.Time
}

type RefreshTokenConsumed struct {
	TokenID    string
	ConsumedAt time.Time
}

func (AccountCreated) EventName() string { return "account.created" }
func (PasswordChanged) EventName() string { return "account.password_changed" }
func (RoleChanged) EventName() string { return "account.role_changed" }
func (RefreshTokenIssued) EventName() string { return "refresh_token.issued" }
func (RefreshTokenConsumed) EventName() string { return "refresh_token.consumed" }

// outbox is a FIFO buffer embedded in each aggregate.
type outbox struct {
	events []Event
}

func (o *outbox) enqueue(e Event) {
	o.events = append(o.events, e)
}

// DequeueEvent pops the oldest pending event, or returns nil when none remain.
func (o *outbox) DequeueEvent() Event {
	if len(o.events) == 0 {
		return nil
	}
	e := o.events[0]
	o.events[0] = nil
	o.events = o.events[1:]
	return e
}

// PendingEvents reports how many events are waiting to be drained.
func (o *outbox) PendingEvents() int {
	return len(o.events)
}
