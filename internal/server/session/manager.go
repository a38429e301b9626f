package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
)

type (
	// A Manager issues and validates the bearer tokens used by the API.
	Manager interface {
		// SigningKey returns the JWT signing key.
		SigningKey() []byte
		// Token generates a signed token for the given user.
		Token(user *model.User) (string, error)
		// UserFromToken returns the user for the given bearer token.
		UserFromToken(token string) (*model.User, error)
	}

	manager struct {
		db                  database.Client
		signingKey          []byte
		tokenExpirationTime time.Duration
	}
)

// NewManager returns a new manager.
func NewManager(db database.Client, signingKey []byte, tokenExpirationTime time.Duration) Manager {
	return &manager{
		db:                  db,
		signingKey:          signingKey,
		tokenExpirationTime: tokenExpirationTime,
	}
}

func (m *manager) SigningKey() []byte {
	return m.signingKey
}

func (m *manager) Token(user *model.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_uuid": user.ID,
		"iat":       now.Unix(),
		"exp":       now.Add(m.tokenExpirationTime).Unix(),
	})

	signed, err := token.SignedString(m.signingKey)
	return signed, errors.Wrap(err, "could not sign session token")
}

func (m *manager) UserFromToken(token string) (*model.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ccerror.Unauthorized("Invalid login credentials.")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ccerror.Unauthorized("Invalid login credentials.")
	}
	id, ok := claims["user_uuid"].(string)
	if !ok {
		return nil, ccerror.Unauthorized("Invalid login credentials.")
	}

	user, err := m.db.FindUser(id)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, ccerror.Unauthorized("No such user for given token.")
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	// Tokens issued before the last password change are revoked.
	if iat, ok := claims["iat"].(float64); ok && int64(iat) < user.PasswordUpdatedAt {
		return nil, ccerror.Unauthorized("Revoked token.")
	}

	return user, nil
}
