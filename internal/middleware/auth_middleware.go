package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/farellandr/dealhub/internal/deals"
	"github.com/farellandr/dealhub/internal/helpers"
	"github.com/farellandr/dealhub/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func IssueToken(secret string, userID uint, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// bearerToken returns the token of an "Authorization: Bearer" header, or ""
// with ok == false when the header is malformed. A missing header is ok.
func bearerToken(c *gin.Context) (token string, ok bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", true
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(parts[1])
	return token, token != ""
}

// JWTAuthMiddleware requires a valid token whose role is one of roles.
func JWTAuthMiddleware(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok || tokenString == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing or invalid Authorization header.")
			c.Abort()
			return
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			helpers.RespondWithError(c, http.StatusForbidden, "You do not have access to this resource.")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func hasRole(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// UserFinder resolves subscribers for the viewer middleware.
type UserFinder interface {
	FindUser(ctx context.Context, id uint) (*models.User, error)
}

// ViewerMiddleware resolves the optional subscriber viewing a deal. Requests
// without a token pass through anonymously; a bad token is rejected.
func ViewerMiddleware(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			helpers.RespondWithServiceError(c, fmt.Errorf("%w: malformed authorization header", deals.ErrViewer), "Missing or invalid Authorization header.")
			c.Abort()
			return
		}
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			helpers.RespondWithServiceError(c, fmt.Errorf("%w: %w", deals.ErrViewer, err), "Invalid or expired token.")
			c.Abort()
			return
		}

		if claims.Role == models.RoleSubscriber {
			user, err := users.FindUser(c.Request.Context(), claims.UserID)
			if err != nil {
				helpers.RespondWithServiceError(c, fmt.Errorf("%w: %w", deals.ErrStorage, err), "Error resolving viewer.")
				c.Abort()
				return
			}
			if user != nil {
				c.Set("viewer", &deals.Viewer{UserID: user.ID})
			}
		}
		c.Next()
	}
}

// GetViewer returns the subscriber resolved by ViewerMiddleware, or nil.
func GetViewer(c *gin.Context) *deals.Viewer {
	viewer, exists := c.Get("viewer")
	if !exists {
		return nil
	}
	return viewer.(*deals.Viewer)
}
