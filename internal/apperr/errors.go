package apperr

import "errors"

// Sentinel errors shared across services. The messages are part of the API
// surface; clients match on them.
var (
	// ErrNotAuthenticated is returned when a mutation is attempted without a
	// logged-in user, or by a user who is neither the owner nor an admin.
	ErrNotAuthenticated = errors.New("Not authenticated")

	// ErrWrongCredentials is returned by login on unknown user or bad password.
	ErrWrongCredentials = &InputError{Message: "Wrong credentials"}

	ErrCommentNotFound = errors.New("Comment not found")
	ErrPhotoNotFound   = errors.New("Photo not found")
	ErrAlbumNotFound   = errors.New("Album not found")
	ErrUserNotFound    = errors.New("User not found")
)

// InputError carries a user-facing validation or constraint failure together
// with the arguments that caused it. No state change has happened when one is
// returned.
type InputError struct {
	Message     string
	InvalidArgs map[string]interface{}
}

func (e *InputError) Error() string { return e.Message }

// NewInputError builds an InputError tagging the offending arguments.
func NewInputError(message string, invalidArgs map[string]interface{}) *InputError {
	return &InputError{Message: message, InvalidArgs: invalidArgs}
}

// IsInput reports whether err is an input-validation error and returns it.
func IsInput(err error) (*InputError, bool) {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// Duplicate reports a unique-index violation on a named field. The message
// format follows the store-level uniqueness errors the clients already parse.
type Duplicate struct {
	Field string
}

func (e *Duplicate) Error() string {
	return "expected `" + e.Field + "` to be unique"
}

// AsDuplicate extracts a Duplicate from err when present.
func AsDuplicate(err error) (*Duplicate, bool) {
	var d *Duplicate
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
