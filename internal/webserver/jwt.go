package webserver

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const adminRole = "admin"

// AdminJWT validates the bearer credential on admin routes. Missing,
// malformed and expired tokens all answer 401; role checks happen in
// RequireAdminRole afterwards.
func AdminJWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c echo.Context, err error) error {
			message := "Invalid token"
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				message = "Token has expired"
			case c.Request().Header.Get(echo.HeaderAuthorization) == "":
				message = "Missing or invalid authorization header"
			}
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": message})
		},
	})
}

// RequireAdminRole rejects authenticated callers whose role claim is
// not admin. Must run after AdminJWT.
func RequireAdminRole(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing or invalid authorization header"})
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != adminRole {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Access denied. Admin role required."})
		}
		return next(c)
	}
}

// GenerateToken signs an HS256 token carrying a username and role
// claim. Token issuance has no HTTP endpoint here; this feeds tests and
// operator tooling.
func GenerateToken(secret, username, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}
