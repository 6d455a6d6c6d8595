package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/najdeno/internal/model"
)

// CreateUser creates a new user account.
func CreateUser(ctx context.Context, db *sql.DB, name, email, passwordHash, phone, imageURL string) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, phone, image_url)
		 VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''))`,
		name, email, passwordHash, phone, imageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	var phone, imageURL sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, phone, image_url, created_at, deleted_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &phone, &imageURL, &u.CreatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	u.Phone = phone.String
	u.ImageURL = imageURL.String
	return u, nil
}

// GetUserByEmail returns the active user registered under email.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	var phone, imageURL sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, phone, image_url, created_at, deleted_at
		 FROM users WHERE email = ? AND deleted_at IS NULL`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &phone, &imageURL, &u.CreatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	u.Phone = phone.String
	u.ImageURL = imageURL.String
	return u, nil
}

// UpdateUserProfile updates a user's display name, phone, and image URL.
func UpdateUserProfile(ctx context.Context, db *sql.DB, id int64, name, phone, imageURL string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET name = ?, phone = NULLIF(?, ''), image_url = NULLIF(?, '')
		 WHERE id = ? AND deleted_at IS NULL`,
		name, phone, imageURL, id,
	)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	return nil
}

// DeleteUser soft-deletes a user, freeing the email for re-registration.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
