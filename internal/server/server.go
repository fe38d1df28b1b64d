// Package server exposes the core over a JSON HTTP API. It owns the login
// sessions and bearer tokens; the core packages stay transport-free.
package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/teller-dev/teller/internal/auth"
	"github.com/teller-dev/teller/internal/bank"
	"github.com/teller-dev/teller/internal/config"
	"github.com/teller-dev/teller/internal/id"
)

// Server wires the registry to HTTP handlers.
type Server struct {
	reg *bank.Registry
	cfg *config.Config
	log *zerolog.Logger

	// sessions holds one in-flight login protocol per account number. A
	// session is discarded on success or lock, so a later login starts
	// with a fresh attempt budget.
	sessions map[int64]*auth.Session
	// tokens maps bearer tokens to authenticated account numbers.
	tokens map[string]int64
}

// New creates a Server.
func New(reg *bank.Registry, cfg *config.Config, log *zerolog.Logger) *Server {
	return &Server{
		reg:      reg,
		cfg:      cfg,
		log:      log,
		sessions: make(map[int64]*auth.Session),
		tokens:   make(map[string]int64),
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.NotFound(notFound)

	mux.Post("/accounts", s.openAccount)
	mux.Get("/stats", s.stats)
	mux.Route("/accounts/{number:[0-9]+}", func(r chi.Router) {
		r.Post("/login", s.login)
		r.Group(func(pr chi.Router) {
			pr.Use(s.authenticated)
			pr.Post("/deposit", s.deposit)
			pr.Post("/withdraw", s.withdraw)
			pr.Get("/balance", s.balance)
			pr.Get("/transactions", s.transactions)
			pr.Post("/interest", s.interest)
			pr.Put("/password", s.changePassword)
			pr.Put("/pin", s.changePIN)
			pr.Get("/details", s.details)
			pr.Get("/statement", s.statement)
		})
	})

	return mux
}

// authenticated requires a bearer token previously issued by login for the
// account number in the URL.
func (s *Server) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		num, err := id.Parse(chi.URLParam(r, "number"))
		if err != nil {
			writeError(w, errBadRequest{"number": "invalid format"})
			return
		}
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tok == "" || s.tokens[tok] != num {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// issueToken mints a bearer token for an authenticated account.
func (s *Server) issueToken(number int64) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	tok := hex.EncodeToString(buf)
	s.tokens[tok] = number
	return tok
}
