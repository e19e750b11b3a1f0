package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"go-shop/pkg/errors"
)

// Session roles
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Cookie names for the two apps
const (
	SessionCookie      = "session"
	AdminSessionCookie = "admin_session"
)

// UserIDKey is the gin context key holding the authenticated user's ID
const UserIDKey = "user_id"

// Claims are the JWT claims carried by a session cookie
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session tokens. One instance is created
// in main and injected wherever sessions are needed.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session manager
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the given user and role
func (m *Manager) Issue(userID uint, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a session token and returns its claims
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewUnauthorized("invalid or expired session")
	}
	return claims, nil
}

// TTL returns the session lifetime, used when setting cookies
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// SetSessionCookie writes the session token as an HTTP-only cookie
func SetSessionCookie(c *gin.Context, cookie, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie, token, int(ttl.Seconds()), "/", "", false, true)
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c *gin.Context, cookie string) {
	c.SetCookie(cookie, "", -1, "/", "", false, true)
}

// RequireSession rejects requests without a valid session cookie for
// the given role and stores the user ID on the gin context
func RequireSession(m *Manager, cookie, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cookie)
		if err != nil || tokenString == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := m.Parse(tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid or expired session")
			return
		}

		if claims.Role != role {
			abortUnauthorized(c, "insufficient privileges")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user's ID set by RequireSession
func UserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errors.Envelope{
		Status:  false,
		Message: message,
	})
}
