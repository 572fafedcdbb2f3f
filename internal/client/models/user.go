package models

// User is the public view of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserRecord is a stored account. Password is only present on records
// written before verifiers were introduced and is cleared on the next login.
type UserRecord struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Salt     []byte `json:"salt,omitempty"`
	Verifier []byte `json:"verifier,omitempty"`
	Password string `json:"password,omitempty"`
}

// Public strips credentials.
func (r UserRecord) Public() User {
	return User{ID: r.ID, Email: r.Email}
}

// Session is what is persisted for the signed-in user.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
