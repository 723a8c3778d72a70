package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists and validates staff refresh tokens.  Only the
// SHA-256 hash of a token is stored, never the raw value.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

const (
	insertRefreshSQL  = "INSERT INTO refresh_tokens (staff_id, token_hash, expires_at) VALUES (?,?,?)"
	selectRefreshSQL  = "SELECT staff_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1"
	revokeByHashSQL   = "UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE token_hash=? AND revoked_at IS NULL"
	revokeForStaffSQL = "UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE staff_id=? AND revoked_at IS NULL"
	deleteExpiredSQL  = "DELETE FROM refresh_tokens WHERE expires_at < ?"
)

// StoreRefresh inserts a refresh token hash row.
func (r *TokenRepo) StoreRefresh(ctx context.Context, staffID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx, insertRefreshSQL, staffID, tokenHash, exp)
	return err
}

// ValidateRefresh returns the owning staff ID of a live token.  Revoked,
// expired and unknown tokens all report sql.ErrNoRows so callers cannot
// tell them apart.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		staffID   uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, selectRefreshSQL, tokenHash).Scan(&staffID, &expiresAt, &revokedAt)
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid || time.Now().UTC().After(expiresAt) {
		return 0, sql.ErrNoRows
	}
	return staffID, nil
}

// RevokeByHash marks a token as revoked.  Revoking twice is harmless.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx, revokeByHashSQL, tokenHash)
	return err
}

// RevokeAllForStaff revokes every active token of a staff account, used
// when an account is deactivated or its password changes.
func (r *TokenRepo) RevokeAllForStaff(ctx context.Context, staffID uint64) error {
	_, err := r.DB.ExecContext(ctx, revokeForStaffSQL, staffID)
	return err
}

// DeleteExpired removes tokens that expired before cutoff and reports how
// many rows were dropped.
func (r *TokenRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, deleteExpiredSQL, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
