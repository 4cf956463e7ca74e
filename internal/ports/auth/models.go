package auth

// Claims representa la información extraída del token.
type Claims struct {
	UserID   int64
	Username string
}
