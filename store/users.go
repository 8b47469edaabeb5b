package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"kalma/auth"
	"kalma/models"
)

// bcrypt only hashes the first 72 bytes and refuses anything longer
const maxPasswordBytes = 72

// NormalizeEmail is the canonical form emails are stored and looked up in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register validates the form and creates the user with a hashed password.
// Nothing is written when it returns an error.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	fullname := strings.TrimSpace(req.Fullname)
	email := NormalizeEmail(req.Email)

	if fullname == "" || email == "" || req.Password == "" {
		return models.User{}, invalid("Please fill all required fields.")
	}
	if req.Password != req.Confirm {
		return models.User{}, invalid("Passwords do not match.")
	}
	if len(req.Password) > maxPasswordBytes {
		return models.User{}, invalid("Password is too long.")
	}

	if _, err := s.UserByEmail(ctx, email); err == nil {
		return models.User{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		s.q(`INSERT INTO users (fullname, email, password) VALUES (?, ?, ?)`),
		fullname, email, hash,
	)
	if err != nil {
		// lost a race with a concurrent registration
		if isUniqueViolation(err) {
			return models.User{}, ErrConflict
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return s.UserByEmail(ctx, email)
}

// Authenticate reports whether password matches the stored hash for email.
// An unknown email is a plain false.
func (s *Store) Authenticate(ctx context.Context, email, password string) (bool, error) {
	u, err := s.UserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return auth.CheckPassword(u.Password, password), nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		s.q(`SELECT id, fullname, email, password FROM users WHERE email = ?`),
		NormalizeEmail(email),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
