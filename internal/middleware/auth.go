package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"transcript_api/internal/auth"
	"transcript_api/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const CurrentUserKey = "currentUser"

// AuthMiddleware is the gate in front of every protected endpoint. It
// extracts the bearer token, decodes it, and loads the user named in the
// "sub" claim. Each step short-circuits on failure, and every failure cause
// collapses to the same 401 response; the distinction stays in the debug
// log only.
func AuthMiddleware(codec *auth.Codec, users user.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, "missing or malformed authorization header")
			return
		}

		claims, err := codec.Decode(tokenString)
		if err != nil {
			reject(c, "token rejected")
			return
		}

		if claims.Subject == "" {
			reject(c, "token has no subject claim")
			return
		}

		u, err := users.GetUserByUsername(claims.Subject)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				reject(c, "subject not found")
				return
			}
			// A store fault is not a credential problem; it must not
			// masquerade as one.
			logrus.WithError(err).Error("Failed to load user for auth gate")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		c.Set(CurrentUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware for this request.
func CurrentUser(c *gin.Context) (*user.User, error) {
	val, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, errors.New("no authenticated user in context")
	}

	u, ok := val.(*user.User)
	if !ok {
		return nil, fmt.Errorf("unexpected current user type %T", val)
	}

	return u, nil
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

func reject(c *gin.Context, cause string) {
	logrus.WithField("cause", cause).Debug("Request rejected by auth gate")

	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
}
