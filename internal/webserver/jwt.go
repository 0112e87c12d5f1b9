package webserver

import (
	"net/http"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the validity window of an issued session token.
const TokenTTL = 24 * time.Hour

// AdminClaims is the session token payload: administrator id and username.
type AdminClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AdminID returns the administrator identifier carried by the claims.
func (c *AdminClaims) AdminID() int64 {
	id, _ := strconv.ParseInt(c.ID, 10, 64)
	return id
}

// IssueToken signs a session token for the given administrator.
func IssueToken(adminID int64, username, secret string) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		ID:       strconv.FormatInt(adminID, 10),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// JwtMiddleware guards protected routes. A request without any credential is
// rejected with 403; an invalid or expired token with 401.
func JwtMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(AdminClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false,
					"message": "Access denied. No token provided.",
				})
			}
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Invalid or expired token",
			})
		},
	})
}

// CurrentAdminID extracts the authenticated administrator id from the request
// context populated by JwtMiddleware.
func CurrentAdminID(c echo.Context) int64 {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return 0
	}
	return claims.AdminID()
}
