package endpoints

import (
	"errors"
	"net/http"

	"github.com/stateloan/lms-auth/pkg/audit"
	"github.com/stateloan/lms-auth/pkg/authz"
	"github.com/stateloan/lms-auth/pkg/identity"
	"github.com/stateloan/lms-auth/pkg/model"
	"github.com/stateloan/lms-auth/pkg/server"
	"github.com/stateloan/lms-auth/pkg/server/store"
	"github.com/stateloan/lms-auth/pkg/token"
)

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// JwtResponse is the body of a successful login. Roles carries the
// user's role names; the full authority list lives in the token claims.
type JwtResponse struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// MessageResponse carries a human-readable outcome message
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterAuthEndpoints registers the authentication endpoints.
// Registration and login are public; logout and introspection require a
// valid token.
func RegisterAuthEndpoints(s *server.Server) {
	users := s.Stores.Users
	issuer := s.Issuer

	authRouter := s.Router.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", handleRegister(users)).Methods("POST")
	authRouter.HandleFunc("/login", handleLogin(users, issuer)).Methods("POST")

	protected := s.Router.PathPrefix("/api/auth").Subrouter()
	protected.Use(s.Middleware.Middleware)
	protected.HandleFunc("/logout", handleLogout()).Methods("POST")
	protected.HandleFunc("/me", handleMe(users)).Methods("GET")
}

func handleRegister(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		clientIP := identity.ClientIP(r).String()

		_, err := users.CreateUser(req.Username, req.Email, req.Password)
		if err != nil {
			audit.Log(audit.RegisterEvent{
				Username:     req.Username,
				Email:        req.Email,
				ClientIP:     clientIP,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			// On the public register path a duplicate username or email
			// is a 400, not a 409.
			var conflict *store.ConflictError
			if errors.As(err, &conflict) {
				respondWithError(w, http.StatusBadRequest, conflict.Message)
				return
			}
			respondWithStoreError(w, err)
			return
		}

		audit.Log(audit.RegisterEvent{
			Username: req.Username,
			Email:    req.Email,
			ClientIP: clientIP,
			Success:  true,
		})
		respondWithJSON(w, http.StatusOK, MessageResponse{Message: "User registered successfully!"})
	}
}

func handleLogin(users store.UsersStore, issuer *token.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}

		clientIP := identity.ClientIP(r).String()

		// The same generic failure is returned for an unknown username,
		// a wrong password and a disabled account.
		fail := func(reason string) {
			audit.Log(audit.AuthenticateEvent{
				Username:     req.Username,
				ClientIP:     clientIP,
				Success:      false,
				ErrorMessage: reason,
			})
			respondWithStoreError(w, store.ErrInvalidCredentials())
		}

		user, err := users.FindUserByUsernameWithRoles(req.Username)
		if err != nil {
			fail("unknown username")
			return
		}
		if !users.VerifyPassword(user, req.Password) {
			fail("wrong password")
			return
		}
		if !user.Enabled {
			fail("account disabled")
			return
		}

		authorities := authz.EffectiveAuthorities(user)
		signed, err := issuer.Issue(user, authorities)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Username: user.Username,
			ClientIP: clientIP,
			Success:  true,
		})

		respondWithJSON(w, http.StatusOK, JwtResponse{
			Token:    signed,
			Type:     "Bearer",
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Roles:    user.RoleNames(),
		})
	}
}

// handleLogout acknowledges the logout. Tokens are stateless, so the
// client discards its copy; the token stays technically valid until
// expiry.
func handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, MessageResponse{Message: "User logged out successfully!"})
	}
}

// MeResponse is the body of GET /api/auth/me: the account with its
// roles, plus the authority list derived from them.
type MeResponse struct {
	*model.User
	Authorities []string `json:"authorities"`
}

// handleMe returns the current account from the database, so the roles
// and authorities are fresh even when the token's claims are stale.
func handleMe(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		user, err := users.FindUserByIDWithRoles(id.UserID)
		if err != nil {
			respondWithStoreError(w, err)
			return
		}

		respondWithJSON(w, http.StatusOK, MeResponse{
			User:        user,
			Authorities: authz.EffectiveAuthorities(user),
		})
	}
}
