package auth

// AuthenticationError is raised when a caller cannot be authenticated.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

var (
	ErrNoUser               = &AuthenticationError{Message: "No user found with this username"}
	ErrIncorrectCredentials = &AuthenticationError{Message: "Incorrect credentials"}
	ErrNotLoggedIn          = &AuthenticationError{Message: "You need to be logged in!"}
)
