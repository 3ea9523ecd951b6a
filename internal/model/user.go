package model

// User is a registered user of the bank. The password is stored as an opaque
// credential; the core never interprets it beyond length/whitespace policy.
type User struct {
	ID       int
	Username string
	Password string
}

// String renders the user for superuser listings, without the credential.
func (u User) String() string {
	return u.Username
}
