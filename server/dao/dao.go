// Package dao provides data access objects for use in the ecp server.
package dao

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store holds all the repositories.
type Store interface {
	Users() UserRepository
	Sources() SourceRepository
	Close() error
}

// UserRepository stores the accounts that may log in to the server.
type UserRepository interface {
	// Create creates a new User. All attributes except for auto-generated
	// fields are taken from the provided User.
	Create(ctx context.Context, user User) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, id uuid.UUID, user User) (User, error)
	Delete(ctx context.Context, id uuid.UUID) (User, error)
	Close() error
}

// SourceRepository stores source documents uploaded by users along with the
// cached result of tokenizing them.
type SourceRepository interface {
	// Create creates a new Source. All attributes except for auto-generated
	// fields are taken from the provided Source.
	Create(ctx context.Context, src Source) (Source, error)
	GetAll(ctx context.Context) ([]Source, error)
	GetAllByOwner(ctx context.Context, owner uuid.UUID) ([]Source, error)
	GetByID(ctx context.Context, id uuid.UUID) (Source, error)

	// SetTokens replaces the cached token data of the Source with the given
	// ID. Passing nil clears the cache.
	SetTokens(ctx context.Context, id uuid.UUID, tokens []byte) (Source, error)
	Delete(ctx context.Context, id uuid.UUID) (Source, error)
	Close() error
}

// Role is the level of access a User has.
type Role int

const (
	Guest Role = iota
	Unverified
	Normal

	Admin Role = 100
)

func (r Role) String() string {
	switch r {
	case Guest:
		return "guest"
	case Unverified:
		return "unverified"
	case Normal:
		return "normal"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", r)
	}
}

// ParseRole parses the String form of a Role. It is case-insensitive.
func ParseRole(s string) (Role, error) {
	check := strings.ToLower(s)
	switch check {
	case "guest":
		return Guest, nil
	case "unverified":
		return Unverified, nil
	case "normal":
		return Normal, nil
	case "admin":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("must be one of 'guest', 'unverified', 'normal', or 'admin'")
	}
}

// User is an account on the server. Password holds the base64-encoded bcrypt
// hash of the password, never the password itself.
type User struct {
	ID             uuid.UUID
	Username       string
	Password       string
	Email          *mail.Address
	Role           Role
	Created        time.Time
	Modified       time.Time
	LastLogoutTime time.Time
	LastLoginTime  time.Time
}

// Source is a named document of source text owned by a User.
type Source struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
	Text    string
	Created time.Time

	// Tokens is the cached result of tokenizing Text along with the keywords
	// it was lexed with, as written by lexsvc. It is nil until the source has
	// been tokenized once.
	Tokens []byte
}
