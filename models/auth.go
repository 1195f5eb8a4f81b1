package models

// GrantTypePassword is the only grant type the token endpoint accepts.
const GrantTypePassword = "password"

// TokenRequest is the form posted to the token endpoint.
type TokenRequest struct {
	GrantType string `json:"grant_type"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	ClientID  string `json:"client_id"`
}

// TokenResponse is returned by the token endpoint on success.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`

	// ExpiresIn is the lifetime of AccessToken in seconds.
	ExpiresIn int64 `json:"expires_in"`
}
