package identity

// OAuthToken is a host's delegated Google OAuth token pair. The refresh
// token is durable; the access token is short-lived and never persisted.
type OAuthToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type updateTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}
