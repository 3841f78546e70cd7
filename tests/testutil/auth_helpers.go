package testutil

import (
	"strings"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/tailorlink/tailorlink-api/middleware"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, issuer, role string, scopes []string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Scope: strings.Join(scopes, " "),
			Role:  role,
		},
	}
}

// SetMockAuthContext sets up a mock authenticated context the way the JWT
// middleware would after validating a token
func SetMockAuthContext(c *gin.Context, auth0ID, role string, scopes []string) {
	claims := MockValidatedClaims(auth0ID, "https://tailorlink-test.us.auth0.com/", role, scopes)
	c.Set("user_id", auth0ID)
	c.Set("access_token", "mock-token")
	c.Set("validated_claims", claims)
}

// MockAuthMiddleware returns a Gin middleware that authenticates every
// request as the given account
func MockAuthMiddleware(auth0ID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetMockAuthContext(c, auth0ID, role, nil)
		c.Next()
	}
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}
