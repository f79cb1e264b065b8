package session

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/0nyxlabs/merchanding/internal/constants"
	inErrors "github.com/0nyxlabs/merchanding/internal/errors"
	"github.com/0nyxlabs/merchanding/internal/log"
)

type appMetadata struct {
	Role string `json:"role"`
}

type claims struct {
	jwt.RegisteredClaims
	AppMetadata appMetadata `json:"app_metadata"`
}

// VerifyToken parses the auth provider's access token and maps it to a
// Session. The subject claim carries the user id; the role flag lives in the
// app_metadata claim.
func VerifyToken(c context.Context, token string, secretKey string) (Session, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "session VerifyToken").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	cl := claims{}
	jwtToken, err := jwt.ParseWithClaims(
		token,
		&cl,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithAudience(constants.AudienceStorefront),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return Session{}, err
	}
	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return Session{}, inErrors.ErrTokenInvalid
	}

	logger = logger.With().Str(log.KeyProcess, "validating subject").Logger()
	if cl.Subject == "" {
		logger.Error().Err(inErrors.ErrEmptySubject).Msg(inErrors.ErrEmptySubject.Error())
		return Session{}, inErrors.ErrEmptySubject
	}
	userId, err := uuid.Parse(cl.Subject)
	if err != nil {
		err = fmt.Errorf("failed parsing subject=%s with error=%w", cl.Subject, err)
		logger.Error().Err(err).Msg(err.Error())
		return Session{}, err
	}

	return Session{UserID: userId, Role: cl.AppMetadata.Role, AccessToken: token}, nil
}
