package utils

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const (
	StaffIDKey   contextKey = "staffID"
	StaffRoleKey contextKey = "staffRole"
)

// StaffClaims carries the staff account id (subject) and role.
type StaffClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func GetStaffIDFromContext(r *http.Request) (uint, error) {
	staffID, ok := r.Context().Value(StaffIDKey).(uint)
	if !ok {
		return 0, errors.New("staff ID not found in context")
	}
	return staffID, nil
}

// GenerateStaffToken signs a bearer token for the given staff account.
func GenerateStaffToken(staffID uint, role string, ttl time.Duration) (string, error) {
	claims := StaffClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(staffID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}

// AuthMiddleware guards mutating routes: it requires a valid staff bearer
// token and puts the staff id and role on the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

		claims := &StaffClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("SECRET_KEY")), nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		staffID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			http.Error(w, "Invalid staff ID in token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), StaffIDKey, uint(staffID))
		ctx = context.WithValue(ctx, StaffRoleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
