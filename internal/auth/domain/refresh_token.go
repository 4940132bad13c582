package domain

import (
	"time"

	"github.com/aussiebroadwan/gatekeep/pkg/idx"
)

// CodeGenerator produces unguessable opaque codes of an exact length.
type CodeGenerator interface {
	Generate(length int) (string, error)
}

// RefreshToken is a single-use credential issued to an account. It moves from
// issued to consumed and never back.
type RefreshToken struct {
	outbox

	id       string
	issuedTo string
	code     string
	issued   time.Time
	expiry   time.Time
	consumed bool
}

// IssueRefreshToken creates a new token for accountID that expires after lifespan.
func IssueRefreshToken(accountID string, lifespan time.Duration, gen CodeGenerator, length int) (*RefreshToken, error) {
	if lifespan <= 0 {
		return nil, ErrInvalidLifespan
	}
	if length <= 0 {
		return nil, ErrInvalidCodeLength
	}

	code, err := gen.Generate(length)
	if err != nil {
		return nil, err
	}

	issued := time.Now().UTC()
	t := &RefreshToken{
		id:       idx.NewAt(issued).String(),
		issuedTo: accountID,
		code:     code,
		issued:   issued,
		expiry:   issued.Add(lifespan),
	}

	t.enqueue(RefreshTokenIssued{
		TokenID:  t.id,
		IssuedTo: t.issuedTo,
		Code:     t.code,
		Issued:   t.issued,
		Expiry:   t.expiry,
	})

	return t, nil
}

// ExistingRefreshToken rehydrates a stored token. No events are recorded.
func ExistingRefreshToken(id, issuedTo, code string, issued, expiry time.Time, consumed bool) *RefreshToken {
	return &RefreshToken{
		id:       id,
		issuedTo: issuedTo,
		code:     code,
		issued:   issued.UTC(),
		expiry:   expiry.UTC(),
		consumed: consumed,
	}
}

// Consume burns the token. A second call always fails.
func (t *RefreshToken) Consume() error {
	if t.consumed {
		return ErrAlreadyConsumed
	}

	now := time.Now().UTC()
	if now.After(t.expiry) {
		return ErrExpired
	}

	t.consumed = true
	t.enqueue(RefreshTokenConsumed{TokenID: t.id, ConsumedAt: now})
	return nil
}

func (t *RefreshToken) ID() string { return t.id }
func (t *RefreshToken) IssuedTo() string { return t.issuedTo }
func (t *RefreshToken) Code() string { return t.code }
func (t *RefreshToken) Issued() time.Time { return t.issued }
func (t *RefreshToken) Expiry() time.Time { return t.expiry }
func (t *RefreshToken) Consumed() bool { return t.consumed }

// Expired reports whether the token is past its expiry at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.expiry)
}
