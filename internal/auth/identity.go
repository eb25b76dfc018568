package auth

import (
	"encoding/gob"

	"github.com/gin-gonic/gin"
)

// Session and context keys
const (
	SessionName = "sharklink_session"
	identityKey = "identity"
	stateKey    = "oauth_state"
	ContextKey  = "auth.identity"
)

// Identity is the authenticated Google account bound to a session
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Picture     string `json:"picture"`
	AccessToken string `json:"-"`
}

func init() {
	// Identity is stored in the cookie-backed session store
	gob.Register(&Identity{})
}

// FromContext returns the identity injected by RequireAuth, or nil
func FromContext(c *gin.Context) *Identity {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil
	}
	ident, ok := v.(*Identity)
	if !ok {
		return nil
	}
	return ident
}
