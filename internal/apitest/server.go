// Package apitest runs an in-process stand-in for the Sentirse Bien
// backend. It implements the auth endpoints for real (credential check,
// token minting, refresh) and lets each test bolt on whatever domain
// handlers it needs.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sentirsebien/go-client/users"
)

const apiPrefix = "/sentirseBien/api/v1"

var signingSecret = []byte("apitest-secret")

type credential struct {
	password string
	userID   int64
}

// Server is the fake backend. Mutate the exported knobs before the call
// under test; counters report what the client actually did.
type Server struct {
	HTTP   *httptest.Server
	Router *mux.Router

	mu            sync.Mutex
	profiles      map[int64]users.Profile
	creds         map[string]credential
	refreshTokens map[string]int64
	revokedAccess map[string]bool

	// RefreshCalls counts hits on the refresh endpoint
	RefreshCalls int
	// FailRefresh makes the refresh endpoint reject every request
	FailRefresh bool
	// AccessTTL is the lifetime of minted access tokens
	AccessTTL time.Duration
}

func New(t *testing.T) *Server {
	t.Helper()

	root := mux.NewRouter()
	s := &Server{
		Router:        root.PathPrefix(apiPrefix).Subrouter(),
		profiles:      map[int64]users.Profile{},
		creds:         map[string]credential{},
		refreshTokens: map[string]int64{},
		revokedAccess: map[string]bool{},
		AccessTTL:     5 * time.Minute,
	}

	s.Router.HandleFunc("/token/", s.handleToken).Methods(http.MethodPost)
	s.Router.HandleFunc("/token/refresh/", s.handleRefresh).Methods(http.MethodPost)
	s.Router.HandleFunc("/register/", s.handleRegister).Methods(http.MethodPost)
	s.Router.HandleFunc("/users/{id}/", s.handleGetUser).Methods(http.MethodGet)

	s.HTTP = httptest.NewServer(root)
	t.Cleanup(s.HTTP.Close)
	return s
}

// Handle registers a domain endpoint under the API prefix.
func (s *Server) Handle(method, path string, handler http.HandlerFunc) {
	s.Router.HandleFunc(path, handler).Methods(method)
}

// AddUser registers a profile with login credentials.
func (s *Server) AddUser(profile users.Profile, username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = profile
	s.creds[username] = credential{password: password, userID: profile.ID}
}

// MintAccess issues a signed access token with the given expiry. The client
// never verifies the signature, but the token must decode like the real
// simplejwt ones.
func (s *Server) MintAccess(userID int64, expiresAt time.Time) string {
	claims := jwtlib.MapClaims{
		"token_type": "access",
		"user_id":    userID,
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
		"jti":        uuid.New().String(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(signingSecret)
	if err != nil {
		panic(err)
	}
	return signed
}

// MintRefresh issues an opaque refresh token the refresh endpoint will
// honor for userID.
func (s *Server) MintRefresh(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	refreshToken := uuid.New().String()
	s.refreshTokens[refreshToken] = userID
	return refreshToken
}

// RevokeAccess makes the server 401 any request signed with accessToken,
// regardless of its exp claim.
func (s *Server) RevokeAccess(accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revokedAccess[accessToken] = true
}

// Authorized checks the bearer header the way the real backend would:
// present, not revoked, and carrying a future exp.
func (s *Server) Authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return false
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	s.mu.Lock()
	revoked := s.revokedAccess[raw]
	s.mu.Unlock()
	if revoked {
		return false
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return false
	}
	expiresAt, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return false
	}
	return expiresAt.After(time.Now())
}

// RequireAuth wraps a handler with the bearer check.
func (s *Server) RequireAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token not valid"})
			return
		}
		handler(w, r)
	}
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	request := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad request"})
		return
	}

	s.mu.Lock()
	cred, ok := s.creds[request.Username]
	s.mu.Unlock()
	if !ok || cred.password != request.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "no active account found with the given credentials"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access":  s.MintAccess(cred.userID, time.Now().Add(s.AccessTTL)),
		"refresh": s.MintRefresh(cred.userID),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	request := struct {
		Refresh string `json:"refresh"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad request"})
		return
	}

	s.mu.Lock()
	s.RefreshCalls++
	failing := s.FailRefresh
	userID, known := s.refreshTokens[request.Refresh]
	s.mu.Unlock()

	if failing || !known {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token is invalid or expired"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"access": s.MintAccess(userID, time.Now().Add(s.AccessTTL)),
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	registration := users.Registration{}
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad request"})
		return
	}

	s.mu.Lock()
	if _, taken := s.creds[registration.Username]; taken {
		s.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, map[string]any{"username": []string{"already in use"}})
		return
	}
	id := int64(len(s.profiles) + 1)
	s.profiles[id] = users.Profile{
		ID:        id,
		Username:  registration.Username,
		FirstName: registration.FirstName,
		LastName:  registration.LastName,
		CUIT:      registration.CUIT,
		Email:     registration.Email,
	}
	s.creds[registration.Username] = credential{password: registration.Password, userID: id}
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{
		"access":  s.MintAccess(id, time.Now().Add(s.AccessTTL)),
		"refresh": s.MintRefresh(id),
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if !s.Authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "token not valid"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "bad id"})
		return
	}

	s.mu.Lock()
	profile, ok := s.profiles[id]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
