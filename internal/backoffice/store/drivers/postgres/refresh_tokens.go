package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/domain"

	"github.com/jackc/pgx/v5"
)

type refreshTokensRepo struct {
	db querier
}

const refreshTokenColumns = `id, user_id, token_hash, expires_at, revoked_at, created_at`

func scanRefreshToken(row pgx.Row) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	if err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.RevokedAt, &t.CreatedAt); err != nil {
		return domain.RefreshToken{}, err
	}
	t.ExpiresAt = t.ExpiresAt.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	if t.RevokedAt != nil {
		at := t.RevokedAt.UTC()
		t.RevokedAt = &at
	}
	return t, nil
}

func (r *refreshTokensRepo) CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, revoked_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt.UTC(), t.RevokedAt, t.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *refreshTokensRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error) {
	row := r.db.QueryRow(ctx, `SELECT `+refreshTokenColumns+` FROM refresh_tokens WHERE token_hash = $1`, hash)
	t, err := scanRefreshToken(row)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *refreshTokensRepo) RevokeRefreshToken(ctx context.Context, hash string, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = $1 WHERE token_hash = $2 AND revoked_at IS NULL`,
		at.UTC(), hash,
	)
	return err
}

// ConsumeRefreshToken relies on the row lock taken by the UPDATE: a racing
// transaction blocks, then re-evaluates revoked_at and matches nothing.
func (r *refreshTokensRepo) ConsumeRefreshToken(ctx context.Context, hash string, now time.Time) error {
	return expectOne(r.db.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = $1
		WHERE token_hash = $2 AND revoked_at IS NULL AND expires_at > $1`,
		now.UTC(), hash,
	))
}

func (r *refreshTokensRepo) ListUserRefreshTokens(ctx context.Context, userID string) ([]domain.RefreshToken, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+refreshTokenColumns+` FROM refresh_tokens WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.RefreshToken{}
	for rows.Next() {
		t, err := scanRefreshToken(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
