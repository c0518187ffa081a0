package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// AuthClaims is the slice of ID-token claims the app cares about: the
// stable subject id plus optional profile fields used to upsert the user
// row on login.
type AuthClaims struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

const claimsContextKey = "authClaims"

type AuthMiddleware struct {
	authClient *auth.Client
}

func NewAuthMiddleware(ctx context.Context) (*AuthMiddleware, error) {
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "FIREBASE_PROJECT_ID is not set")
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &AuthMiddleware{authClient: client}, nil
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")
		token, err := m.authClient.VerifyIDToken(c.Request().Context(), tokenStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		claims := AuthClaims{
			UID:     token.UID,
			Email:   stringClaim(token.Claims, "email"),
			Name:    stringClaim(token.Claims, "name"),
			Picture: stringClaim(token.Claims, "picture"),
		}
		c.Set("uid", token.UID)
		c.Set(claimsContextKey, claims)
		return next(c)
	}
}

// ClaimsFrom returns the verified claims stored by RequireAuth, or false
// when the request did not pass through it.
func ClaimsFrom(c echo.Context) (AuthClaims, bool) {
	claims, ok := c.Get(claimsContextKey).(AuthClaims)
	return claims, ok
}

func stringClaim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
