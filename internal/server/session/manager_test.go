package session_test

import (
	"os"
	"testing"
	"time"

	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerTokenRoundtrip(t *testing.T) {
	db := setup(t)
	m := session.NewManager(db, []byte("secret"), time.Hour)

	user := model.NewUser()
	user.Name = "George Abitbol"
	user.Email = "george.abitbol@nowhere.lan"
	user.PasswordUpdatedAt = time.Now().Add(-12 * time.Hour).Unix()
	require.NoError(t, db.Save(user))

	token, err := m.Token(user)
	require.NoError(t, err)
	assert.Regexp(t, `.*\..*\..*`, token)

	got, err := m.UserFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
}

func TestManagerGarbageToken(t *testing.T) {
	db := setup(t)
	m := session.NewManager(db, []byte("secret"), time.Hour)

	_, err := m.UserFromToken("garbage")
	assert.Error(t, err)
}

func TestManagerWrongKey(t *testing.T) {
	db := setup(t)

	user := model.NewUser()
	user.Email = "george.abitbol@nowhere.lan"
	require.NoError(t, db.Save(user))

	token, err := session.NewManager(db, []byte("secret"), time.Hour).Token(user)
	require.NoError(t, err)

	_, err = session.NewManager(db, []byte("other"), time.Hour).UserFromToken(token)
	assert.Error(t, err)
}

func TestManagerRevocation(t *testing.T) {
	db := setup(t)
	m := session.NewManager(db, []byte("secret"), time.Hour)

	user := model.NewUser()
	user.Email = "george.abitbol@nowhere.lan"
	user.PasswordUpdatedAt = time.Now().Add(-12 * time.Hour).Unix()
	require.NoError(t, db.Save(user))

	token, err := m.Token(user)
	require.NoError(t, err)

	// A password change after issuance revokes the token.
	user.PasswordUpdatedAt = time.Now().Add(time.Minute).Unix()
	require.NoError(t, db.Save(user))

	_, err = m.UserFromToken(token)
	require.Error(t, err)
	assert.Equal(t, "Revoked token.", err.Error())
}

func setup(t *testing.T) database.Client {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "campusconnect.*.db")
	if err != nil {
		t.Fatal(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err := database.StormOpen(filename, "msgpack")
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(filename)
	})
	return db
}
