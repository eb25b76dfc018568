package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth rejects requests without a session identity and injects
// the identity into the gin context for downstream handlers
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		v := session.Get(identityKey)

		ident, ok := v.(*Identity)
		if !ok || ident == nil || ident.Email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "Unauthorized",
			})
			return
		}

		c.Set(ContextKey, ident)
		c.Next()
	}
}

// SaveIdentity writes the identity into the request's session
func SaveIdentity(c *gin.Context, ident *Identity) error {
	session := sessions.Default(c)
	session.Set(identityKey, ident)
	return session.Save()
}

// ClearIdentity removes the identity from the request's session
func ClearIdentity(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(identityKey)
	return session.Save()
}

// SaveState stores the OAuth state token in the session
func SaveState(c *gin.Context, state string) error {
	session := sessions.Default(c)
	session.Set(stateKey, state)
	return session.Save()
}

// PopState retrieves and clears the OAuth state token
func PopState(c *gin.Context) string {
	session := sessions.Default(c)
	v := session.Get(stateKey)
	session.Delete(stateKey)
	_ = session.Save()

	state, _ := v.(string)
	return state
}
