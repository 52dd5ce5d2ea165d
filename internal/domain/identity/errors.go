package identity

import "errors"

var (
	// ErrInvalidCredentials covers unknown username, inactive account and
	// wrong password alike, so the response never reveals which field
	// was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPendingApproval means the credentials matched but an
	// administrator has not approved the account yet.
	ErrPendingApproval = errors.New("account pending approval")

	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)
