package serializer

import "github.com/prateekdahiya/campusconnect/internal/model"

// Credentials serialize a user and its freshly issued token to the
// payload expected by the web client.
func Credentials(token string, user *model.User) interface{} {
	return map[string]interface{}{
		"token": token,
		"user":  user,
	}
}

// Message serialize a human-readable confirmation.
func Message(message string) interface{} {
	return map[string]interface{}{
		"message": message,
	}
}
