// Package otp issues and verifies the one-time passcodes used in place of
// passwords. State lives in an injected Store keyed by phone number, not in
// a process-wide cache.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

var (
	ErrRateLimited     = errors.New("please wait before requesting another OTP")
	ErrExpired         = errors.New("OTP has expired")
	ErrTooManyAttempts = errors.New("too many attempts, request a new OTP")
	ErrMismatch        = errors.New("invalid OTP")
)

const (
	codeTTL      = 300 * time.Second
	rateLimitTTL = 60 * time.Second
	maxAttempts  = 3
)

// Entry is the cached OTP state for one phone number.
type Entry struct {
	Code     string `json:"code"`
	Attempts int    `json:"attempts"`
}

// Store is the key-value backend holding OTP entries and rate-limit
// markers.
type Store interface {
	GetEntry(ctx context.Context, phone string) (*Entry, error)
	SetEntry(ctx context.Context, phone string, e *Entry, ttl time.Duration) error
	DeleteEntry(ctx context.Context, phone string) error

	RateLimited(ctx context.Context, phone string) (bool, error)
	MarkRateLimit(ctx context.Context, phone string, ttl time.Duration) error
}

type Manager struct {
	Store Store
}

func randomCode() (string, error) {
	// 6-digit, 100000..999999
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Generate creates and stores a fresh 6-digit code for phone. At most one
// issuance per minute per phone.
func (m *Manager) Generate(ctx context.Context, phone string) (string, error) {
	limited, err := m.Store.RateLimited(ctx, phone)
	if err != nil {
		return "", err
	}
	if limited {
		return "", ErrRateLimited
	}

	code, err := randomCode()
	if err != nil {
		return "", err
	}

	if err := m.Store.SetEntry(ctx, phone, &Entry{Code: code}, codeTTL); err != nil {
		return "", err
	}
	if err := m.Store.MarkRateLimit(ctx, phone, rateLimitTTL); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks submitted against the stored code. The entry survives a
// mismatch for up to three attempts, then is deleted.
func (m *Manager) Verify(ctx context.Context, phone, submitted string) error {
	entry, err := m.Store.GetEntry(ctx, phone)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrExpired
	}

	if entry.Attempts >= maxAttempts {
		if err := m.Store.DeleteEntry(ctx, phone); err != nil {
			return err
		}
		return ErrTooManyAttempts
	}

	entry.Attempts++
	if err := m.Store.SetEntry(ctx, phone, entry, codeTTL); err != nil {
		return err
	}

	if entry.Code != submitted {
		return ErrMismatch
	}
	return nil
}
