package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	inErrors "github.com/0nyxlabs/merchanding/internal/errors"
	inHttp "github.com/0nyxlabs/merchanding/internal/http"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/session"
)

// Auth verifies the bearer access token issued by the external auth provider
// and attaches the resulting session to the request context.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware Auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			token := strings.TrimPrefix(authorization, "Bearer ")
			sess, err := session.VerifyToken(c, token, secretKey)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			logger = logger.With().
				Str(log.KeyUserID, sess.UserID.String()).
				Str(log.KeyRole, sess.Role).
				Logger()
			c = logger.WithContext(c)
			c = session.AttachToContext(c, sess)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

// Admin gates a subrouter on the role flag carried by the session.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context()).
			With().
			Str(log.KeyTag, "middleware Admin").
			Logger()
		c := logger.WithContext(r.Context())

		sess, ok := session.FromContext(c)
		if !ok || !sess.IsAdmin() {
			logger.Error().
				Err(inErrors.ErrAdminOnly).
				Msg(inErrors.ErrAdminOnly.Error())
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusForbidden,
				"message":    inErrors.ErrAdminOnly.Error(),
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
