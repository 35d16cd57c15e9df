package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
	"github.com/mconstantine/cooler-sub002/internal/auth"
	"github.com/mconstantine/cooler-sub002/internal/config"
	"github.com/mconstantine/cooler-sub002/internal/db"
	"github.com/mconstantine/cooler-sub002/internal/models"
)

// Server is the GraphQL HTTP surface.
type Server struct {
	cfg    config.Config
	store  *db.Store
	tokens *auth.TokenManager
	schema graphql.Schema
}

func NewServer(cfg config.Config, store *db.Store) (*Server, error) {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	schema, err := newSchema(store, tokens)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, store: store, tokens: tokens, schema: schema}, nil
}

// Handler composes the HTTP routes: the GraphQL endpoint (with GraphiQL
// in development) and a plain healthcheck.
func (s *Server) Handler() http.Handler {
	dev := s.cfg.Env == "development"
	gql := handler.New(&handler.Config{
		Schema:   &s.schema,
		Pretty:   dev,
		GraphiQL: dev,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.healthCheckHandler)
	mux.Handle("/graphql", s.withViewer(gql))

	return s.enableCORS(mux)
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	health := struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
	}{
		Status:      "available",
		Environment: s.cfg.Env,
	}
	if err := json.NewEncoder(w).Encode(health); err != nil {
		log.Println(err)
	}
}

type viewerContext string

const viewerContextKey viewerContext = "viewerContextKey"

// withViewer resolves the bearer token, if any, into the requesting user
// and stores it in the request context. Requests without a valid token
// proceed unauthenticated; resolvers that need a viewer reject them.
func (s *Server) withViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := s.tokens.Parse(parts[1])
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.store.GetUserByID(r.Context(), userID)
		if err != nil {
			log.Println(err)
			next.ServeHTTP(w, r)
			return
		}
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), viewerContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")
		if origin != "" {
			for _, o := range s.cfg.TrustedOrigins {
				if origin == o || o == "*" {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					// preflight request
					if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
						w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, POST")
						w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
						w.WriteHeader(http.StatusOK)
						return
					}
					break
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// viewer returns the authenticated user from the resolver context.
func viewer(ctx context.Context) (*models.User, error) {
	user, _ := ctx.Value(viewerContextKey).(*models.User)
	if user == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	return user, nil
}
