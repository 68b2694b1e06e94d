package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/franciscosanchezn/store-rating-api/internal/auth"
	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Context keys set by the auth middleware
const (
	IdentityKey = "identity"
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

var errMissingToken = errors.New("missing Authorization header")

// JWTAuth rejects requests without a valid Bearer session token.
// On success the verified identity is stored in the gin context.
func JWTAuth(tokens auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authenticate(c, tokens)
		if err != nil {
			respondUnauthorized(c, err)
			return
		}
		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuth verifies a Bearer token when one is sent and lets anonymous
// requests through. A token that is present but invalid is still rejected.
func OptionalAuth(tokens auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		identity, err := authenticate(c, tokens)
		if err != nil {
			respondUnauthorized(c, err)
			return
		}
		setIdentity(c, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by JWTAuth or OptionalAuth
func CurrentIdentity(c *gin.Context) (*auth.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok && identity != nil
}

// authenticate extracts the Bearer token (RFC 6750) and verifies it
func authenticate(c *gin.Context, tokens auth.TokenService) (*auth.Identity, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errMissingToken
	}

	scheme, tokenString, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return nil, errors.New("authorization header must use Bearer scheme")
	}

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, errors.New("bearer token is empty")
	}

	return tokens.Verify(tokenString)
}

func setIdentity(c *gin.Context, identity *auth.Identity) {
	c.Set(IdentityKey, identity)
	c.Set(UserIDKey, identity.ID)
	c.Set(UserRoleKey, identity.Role)
}

func respondUnauthorized(c *gin.Context, err error) {
	message := "Token is not valid."
	if errors.Is(err, errMissingToken) {
		message = "No token, authorization denied."
	}
	logrus.WithError(err).WithField("path", c.FullPath()).Debug("Rejected request token")

	c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, message))
}
