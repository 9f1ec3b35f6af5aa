package entity

// TokenKind discriminates the two kinds of bearer tokens the system issues.
// A token's kind must match the guard's expectation: refresh tokens may only
// be exchanged for a new pair, never used to authorize a protected action.
type TokenKind string

const (
	// TokenKindAccess is a short-lived token authorizing protected actions.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is a longer-lived token that can only be rotated.
	TokenKindRefresh TokenKind = "refresh"
)

// String returns the string representation of the TokenKind.
func (k TokenKind) String() string {
	return string(k)
}

// IsValid checks if the TokenKind is a valid value.
func (k TokenKind) IsValid() bool {
	switch k {
	case TokenKindAccess, TokenKindRefresh:
		return true
	default:
		return false
	}
}
