package server

import (
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server/session"
)

// This file is only for test purpose and is only loaded by test framework.

// TokenFromUser returns a bearer token for the given user.
func TokenFromUser(ctrl Controller, u *model.User) string {
	m := session.NewManager(ctrl.Database, ctrl.SigningKey, ctrl.TokenExpirationTime)

	token, err := m.Token(u)
	if err != nil {
		panic(err)
	}
	return token
}
