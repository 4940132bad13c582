package sqlstore

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/samber/oops"
)

type refreshTokensRepo struct {
	q    queryer
	d    Dialect
	inTx txRunner
}

// FindRefreshTokenByAccountAndCode matches on the code fingerprint; plaintext
// codes are never stored.
func (r *refreshTokensRepo) FindRefreshTokenByAccountAndCode(
	ctx context.Context,
	accountID, code string,
) (*domain.RefreshToken, error) {
	var (
		id, issuedTo   string
		issued, expiry time.Time
		consumed       bool
	)

	err := r.q.QueryRowContext(ctx, r.d.Rebind(
		`SELECT id, account_id, issued_at, expires_at, consumed
		 FROM refresh_tokens
		 WHERE account_id = ? AND code_hash = ?`),
		accountID, cryptox.FingerprintToken(code),
	).Scan(&id, &issuedTo, &issued, &expiry, &consumed)
	if err != nil {
		err = mapNotFound(err)
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, oops.Code("STORE_FIND_REFRESH_TOKEN_FAILED").With("account_id", accountID).Wrap(err)
	}

	return domain.ExistingRefreshToken(id, issuedTo, code, issued, expiry, consumed), nil
}

// SaveRefreshToken drains the token's events into a single transaction. The
// consume is a compare-and-swap on the consumed flag so only one concurrent
// redeemer can win.
func (r *refreshTokensRepo) SaveRefreshToken(ctx context.Context, t *domain.RefreshToken) error {
	return r.inTx(ctx, func(q queryer) error {
		for ev := t.DequeueEvent(); ev != nil; ev = t.DequeueEvent() {
			switch e := ev.(type) {
			case domain.RefreshTokenIssued:
				_, err := q.ExecContext(ctx, r.d.Rebind(
					`INSERT INTO refresh_tokens (id, account_id, code_hash, issued_at, expires_at, consumed)
					 VALUES (?, ?, ?, ?, ?, ?)`),
					e.TokenID, e.IssuedTo, cryptox.FingerprintToken(e.Code), e.Issued, e.Expiry, false,
				)
				if err != nil {
					if r.d.IsUniqueViolation(err) {
						return store.ErrAlreadyExists
					}
					return oops.Code("STORE_SAVE_REFRESH_TOKEN_FAILED").
						With("token_id", e.TokenID).
						With("event", ev.EventName()).
						Wrap(err)
				}

			case domain.RefreshTokenConsumed:
				res, err := q.ExecContext(ctx, r.d.Rebind(
					`UPDATE refresh_tokens SET consumed = ?, consumed_at = ?
					 WHERE id = ? AND consumed = ?`),
					true, e.ConsumedAt, e.TokenID, false,
				)
				if err != nil {
					return oops.Code("STORE_SAVE_REFRESH_TOKEN_FAILED").
						With("token_id", e.TokenID).
						With("event", ev.EventName()).
						Wrap(err)
				}

				n, err := res.RowsAffected()
				if err != nil {
					return oops.Code("STORE_SAVE_REFRESH_TOKEN_FAILED").With("token_id", e.TokenID).Wrap(err)
				}
				if n == 0 {
					// Someone else consumed it first (or it was purged)
					return domain.ErrAlreadyConsumed
				}

			default:
				return oops.Code("STORE_UNKNOWN_EVENT").With("event", ev.EventName()).Errorf("unhandled refresh token event")
			}
		}

		return nil
	})
}

func (r *refreshTokensRepo) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, r.d.Rebind(
		`DELETE FROM refresh_tokens WHERE expires_at < ? OR consumed = ?`),
		before.UTC(), true,
	)
	if err != nil {
		return 0, oops.Code("STORE_DELETE_REFRESH_TOKENS_FAILED").Wrap(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, oops.Code("STORE_DELETE_REFRESH_TOKENS_FAILED").Wrap(err)
	}
	return n, nil
}
