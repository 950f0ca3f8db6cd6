package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"storyloom.com/storyloom/models"
	"storyloom.com/storyloom/store"
)

type ctxKey int

const actorKey ctxKey = iota

// actorID returns the authenticated user's ID, or 0 for anonymous requests.
func actorID(r *http.Request) int64 {
	id, _ := r.Context().Value(actorKey).(int64)
	return id
}

type tokenClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

func parseToken(secret, raw string) (int64, error) {
	claims := &tokenClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	if !tok.Valid || claims.UserID == 0 {
		return 0, errors.New("invalid token")
	}
	return claims.UserID, nil
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests that do not carry a valid bearer token.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}
			userID, err := parseToken(secret, raw)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), actorKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves a bearer token when present but lets anonymous
// requests through with actor ID 0. Used on public read endpoints and the
// view counter.
func OptionalAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := bearerToken(r); raw != "" {
				if userID, err := parseToken(secret, raw); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), actorKey, userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func issueToken(secret string, userID int64) (string, error) {
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func Register(st store.Store, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username    string `json:"username"`
			DisplayName string `json:"display_name"`
			Email       string `json:"email"`
			Password    string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Email == "" || req.Password == "" {
			http.Error(w, "Username, email, and password are required", http.StatusBadRequest)
			return
		}

		if _, err := st.UserByUsername(r.Context(), req.Username); err == nil {
			http.Error(w, "Username already taken", http.StatusConflict)
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Database query failed", http.StatusInternalServerError)
			log.Println(err)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}

		u := &models.User{
			Username:    req.Username,
			DisplayName: req.DisplayName,
			Email:       req.Email,
			Password:    string(hashed),
		}
		if err := st.CreateUser(r.Context(), u); err != nil {
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			log.Println(err)
			return
		}

		token, err := issueToken(secret, u.ID)
		if err != nil {
			http.Error(w, "Failed to issue token", http.StatusInternalServerError)
			log.Println(err)
			return
		}

		u.Password = ""
		respondJSON(w, http.StatusCreated, map[string]any{"user": u, "token": token})
	}
}

func Login(st store.Store, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		u, err := st.UserByUsername(r.Context(), req.Username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			} else {
				http.Error(w, "Database query failed", http.StatusInternalServerError)
				log.Println(err)
			}
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
			http.Error(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}

		token, err := issueToken(secret, u.ID)
		if err != nil {
			http.Error(w, "Failed to issue token", http.StatusInternalServerError)
			log.Println(err)
			return
		}

		u.Password = ""
		respondJSON(w, http.StatusOK, map[string]any{"user": u, "token": token})
	}
}

func RegisterDeviceToken(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Token == "" {
			http.Error(w, "Device token is required", http.StatusBadRequest)
			return
		}

		if err := st.RegisterDeviceToken(r.Context(), actorID(r), req.Token); err != nil {
			http.Error(w, "Failed to register device token", http.StatusInternalServerError)
			log.Println(err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Device token registered"})
	}
}

func UnregisterDeviceToken(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := muxVar(r, "token")
		if token == "" {
			http.Error(w, "Device token is required", http.StatusBadRequest)
			return
		}

		if err := st.DeleteDeviceToken(r.Context(), token); err != nil {
			http.Error(w, "Failed to remove device token", http.StatusInternalServerError)
			log.Println(err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Device token removed"})
	}
}
