package cart

import (
	"context"
	"database/sql"
	"fmt"
)

// SessionRepo persists the one durable cart artifact: the backend-issued
// cart id, keyed by browser session. Read once at session start, written
// once per cart creation, cleared when the backend no longer knows the id.
type SessionRepo struct {
	DB *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{DB: db}
}

// CartID returns the persisted cart id for a session, "" when none.
func (r *SessionRepo) CartID(ctx context.Context, sessionID string) (string, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(cart_id, '') FROM cart_sessions WHERE session_id = ?
	`, sessionID)

	var cartID string
	if err := row.Scan(&cartID); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("scan cart id: %w", err)
	}
	return cartID, nil
}

func (r *SessionRepo) SetCartID(ctx context.Context, sessionID, cartID string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO cart_sessions (session_id, cart_id, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(session_id) DO UPDATE SET
			cart_id = excluded.cart_id,
			updated_at = CURRENT_TIMESTAMP
	`, sessionID, cartID)
	if err != nil {
		return fmt.Errorf("persist cart id: %w", err)
	}
	return nil
}

// ClearCart drops the stored id after the backend 404s it.
func (r *SessionRepo) ClearCart(ctx context.Context, sessionID string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE cart_sessions SET cart_id = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE session_id = ?
	`, sessionID)
	if err != nil {
		return fmt.Errorf("clear cart id: %w", err)
	}
	return nil
}
