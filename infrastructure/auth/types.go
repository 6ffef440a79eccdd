package auth

type ClaimsData struct {
	Issuer    string
	UserID    string
	Email     string
	ExpiresAt int64
	IssuedAt  int64
	UserAgent string
	DeviceID  string
	TokenType string
}
