package domain

// Identity is the verified username a caller acts as. It is produced only by
// authentication (or by parsing a token issued after authentication) and is
// passed explicitly into every ledger and summary call.
type Identity struct {
	Username string `json:"username"`
}

// IsZero reports whether the identity carries no username.
func (i Identity) IsZero() bool {
	return i.Username == ""
}
