package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/internal/server/serializer"
	"github.com/prateekdahiya/campusconnect/internal/server/session"
)

// auth contains all authentication handlers.
type auth struct {
	db       database.Client
	sessions session.Manager
}

type (
	registerParams struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	loginParams struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	passwordParams struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
)

///// Register
////
//

// Register creates a new user and returns its bearer token.
func (h *auth) Register(c echo.Context) error {
	var params registerParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get user's params.")
	}

	if params.Name == "" {
		return ccerror.Validation("No name provided.")
	}
	if params.Email == "" {
		return ccerror.Validation("No email provided.")
	}
	if params.Password == "" {
		return ccerror.Validation("No password provided.")
	}
	if params.Role != "" && !model.ValidRole(params.Role) {
		return ccerror.Validation("Unknown role.")
	}
	// Staff and admin accounts are seeded by an administrator, never
	// self-registered.
	if params.Role == model.RoleStaff || params.Role == model.RoleAdmin {
		return ccerror.Validation("Staff accounts cannot be self-registered.")
	}

	// Check if the email is free to use.
	u, err := h.db.FindUserByMail(params.Email)
	if err != nil && !h.db.IsNotFound(err) {
		return errors.Wrap(err, "could not get access to database")
	}
	if u != nil {
		return ccerror.Conflict("This email is already registered.")
	}

	user := model.NewUser()
	user.Name = params.Name
	user.Email = params.Email
	if params.Role != "" {
		user.Role = params.Role
	}

	user.Password, err = argon2.GenerateFromPasswordString(params.Password, argon2.Default)
	if err != nil {
		return errors.Wrap(err, "could not store user password safe")
	}
	user.PasswordUpdatedAt = time.Now().Unix()

	if err := h.db.Save(user); err != nil {
		return errors.Wrap(err, "could not persist user")
	}

	token, err := h.sessions.Token(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, serializer.Credentials(token, user))
}

///// Login
////
//

// Login authenticates a user and returns its bearer token.
func (h *auth) Login(c echo.Context) error {
	var params loginParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get credentials.")
	}

	if params.Email == "" || params.Password == "" {
		return ccerror.Validation("No email or password provided.")
	}

	user, err := h.db.FindUserByMail(params.Email)
	if err != nil {
		if h.db.IsNotFound(err) {
			return ccerror.Unauthorized("Invalid email or password.")
		}
		return errors.Wrap(err, "could not get user")
	}

	if err = argon2.CompareHashAndPasswordString(user.Password, params.Password); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return ccerror.Unauthorized("Invalid email or password.")
		}
		return errors.Wrap(err, "could not validate password")
	}

	token, err := h.sessions.Token(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serializer.Credentials(token, user))
}

///// Profile
////
//

// Profile renders the current user.
func (h *auth) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

///// Update Password
////
//

// UpdatePassword updates the user's password and re-issues a token,
// previously issued tokens are revoked.
func (h *auth) UpdatePassword(c echo.Context) error {
	var params passwordParams
	if err := c.Bind(&params); err != nil {
		return ccerror.Validation("Could not get parameters.")
	}

	if params.CurrentPassword == "" {
		return ccerror.Validation("Your current password is required to change your password.")
	}
	if params.NewPassword == "" {
		return ccerror.Validation("Your new password is required to change your password.")
	}

	user := currentUser(c)
	if err := argon2.CompareHashAndPasswordString(user.Password, params.CurrentPassword); err != nil {
		if err == argon2.ErrMismatchedHashAndPassword {
			return ccerror.Unauthorized("The current password you entered is incorrect.")
		}
		return errors.Wrap(err, "could not validate password")
	}

	pw, err := argon2.GenerateFromPasswordString(params.NewPassword, argon2.Default)
	if err != nil {
		return errors.Wrap(err, "could not store user password safe")
	}
	user.Password = pw
	user.PasswordUpdatedAt = time.Now().Unix()

	if err := h.db.Save(user); err != nil {
		return errors.Wrap(err, "could not persist user")
	}

	token, err := h.sessions.Token(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, serializer.Credentials(token, user))
}
