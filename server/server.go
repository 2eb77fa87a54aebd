// Package server provides an HTTP REST server that tokenizes Ektoplasma source
// text and stores source documents for its users.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/ecp/server/api"
	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/lexsvc"
)

// DefaultListenAddress is the address ServeForever listens on when none is
// given.
const DefaultListenAddress = "localhost:8080"

// Server is an HTTP REST server that provides tokenization of source text and
// storage of source documents. The zero-value of a Server should not be used
// directly; call New() to get one ready for use.
type Server struct {
	router http.Handler
	db     dao.Store
	api    api.API
}

// New creates a new Server from the given config. Unset config values are
// filled with their defaults before the config is validated.
func New(cfg Config) (*Server, error) {
	cfg, err := cfg.FillDefaults()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect DB: %w", err)
	}
	log.Printf("DEBUG Connected to %s persistence", cfg.DB)

	a := api.API{
		Backend: lexsvc.Service{
			DB:           db,
			Keywords:     cfg.Keywords,
			PasswordCost: cfg.PasswordCost,
		},
		UnauthDelay: cfg.UnauthDelay(),
		Secret:      cfg.TokenSecret,
	}

	return &Server{
		router: newRouter(a),
		db:     db,
		api:    a,
	}, nil
}

// Handler returns the http.Handler that serves every route of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeForever begins listening on the given address for HTTP REST client
// requests. If address is kept as "", DefaultListenAddress is used. It only
// returns if the server fails.
func (s *Server) ServeForever(address string) error {
	if address == "" {
		address = DefaultListenAddress
	}

	log.Printf("INFO  Listening on %s", address)
	return http.ListenAndServe(address, s.router)
}

// CreateUser adds a user directly to the server's persistence without going
// through the API. It is used to create the initial admin account.
//
// If a user with the same username already exists, the returned error will
// match serr.ErrAlreadyExists with errors.Is.
func (s *Server) CreateUser(ctx context.Context, username, password, email string, role dao.Role) (dao.User, error) {
	user, err := s.api.Backend.CreateUser(ctx, username, password, email, role)
	if err != nil {
		return dao.User{}, fmt.Errorf("create user %q: %w", username, err)
	}
	return user, nil
}

// Close releases the server's persistence.
func (s *Server) Close() error {
	return s.db.Close()
}
