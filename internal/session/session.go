package session

import (
	"context"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

// Session is the slice of the auth provider's state this service consumes:
// the identity behind the request, the role flag carried in the token's
// app-metadata, and the raw access token used to sign outbound API calls.
type Session struct {
	UserID      uuid.UUID
	Role        string
	AccessToken string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type sessionKey struct{}

func FromContext(c context.Context) (Session, bool) {
	s, ok := c.Value(sessionKey{}).(Session)
	return s, ok
}

func AttachToContext(c context.Context, s Session) context.Context {
	return context.WithValue(c, sessionKey{}, s)
}
