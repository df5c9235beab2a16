package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// Context keys set by the auth middleware.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// AnonymousUser is the identity reported when no valid token is present
// on routes that allow unauthenticated access.
const AnonymousUser = "anonymous"

// ErrMissingAuthHeader marks a request with no Authorization header.
var ErrMissingAuthHeader = errors.New("missing Authorization header")

// Auth validates the platform-issued bearer token and stores the caller
// identity in the gin context. Requests without a valid token are
// rejected with 401 and a message the UI can turn into a login prompt.
func Auth(jwtSecret string) gin.HandlerFunc {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty for Auth middleware")
	}

	return func(c *gin.Context) {
		userID, username, err := identityFromRequest(c, jwtSecret)
		if err != nil {
			if errors.Is(err, ErrMissingAuthHeader) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Please sign in to continue"})
			} else {
				logrus.WithError(err).Warn("Auth middleware: invalid token")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Your session has expired, please sign in again"})
			}
			c.Abort()
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, username)
		c.Next()
	}
}

// OptionalAuth resolves identity when a valid token is present and falls
// back to the anonymous identity otherwise. It never rejects a request.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty for OptionalAuth middleware")
	}

	return func(c *gin.Context) {
		userID, username, err := identityFromRequest(c, jwtSecret)
		if err != nil {
			c.Set(ContextUserID, "")
			c.Set(ContextUsername, AnonymousUser)
		} else {
			c.Set(ContextUserID, userID)
			c.Set(ContextUsername, username)
		}
		c.Next()
	}
}

// Identity returns the authenticated caller from the gin context. ok is
// false for anonymous requests.
func Identity(c *gin.Context) (userID, username string, ok bool) {
	idAny, exists := c.Get(ContextUserID)
	if !exists {
		return "", AnonymousUser, false
	}
	userID, _ = idAny.(string)
	if nameAny, exists := c.Get(ContextUsername); exists {
		username, _ = nameAny.(string)
	}
	if userID == "" {
		return "", AnonymousUser, false
	}
	return userID, username, true
}

func identityFromRequest(c *gin.Context, secret string) (string, string, error) {
	tokenStr, err := extractToken(c)
	if err != nil {
		return "", "", err
	}
	claims, err := validateToken(tokenStr, secret)
	if err != nil {
		return "", "", err
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", "", errors.New("token missing user_id claim")
	}
	username, _ := claims["username"].(string)
	if username == "" {
		username = userID
	}
	return userID, username, nil
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", jwt.ErrTokenMalformed
	}
	return parts[1], nil
}

func validateToken(tokenStr, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token or claims type")
}
