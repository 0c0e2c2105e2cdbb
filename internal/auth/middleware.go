package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxClaimsKey = "auth_claims"

// Required rejects requests without a valid, current bearer token.
func Required(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c)
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		if !authenticate(c, tokens, repo, raw) {
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Next()
	}
}

// Optional lets anonymous requests through; a token that is present must
// still be valid.
func Optional(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c)
		if !ok {
			c.Next()
			return
		}
		if !authenticate(c, tokens, repo, raw) {
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens TokenService, repo *Repo, raw string) bool {
	claims, err := tokens.Parse(raw)
	if err != nil {
		return false
	}
	if repo != nil {
		current, err := repo.GetTokenVersion(c.Request.Context(), claims.UserID)
		if err != nil || current != claims.TokenVersion {
			return false
		}
	}
	c.Set(CtxClaimsKey, claims)
	return true
}

func bearer(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(h[len("Bearer "):])
	return raw, raw != ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

// UserID is the authenticated user's id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	if claims := MustGetClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
