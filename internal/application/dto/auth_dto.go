package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest entrada para renovar tokens. También se acepta ?refresh_token=.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" query:"refresh_token"`
}

// TokenResponse par de tokens emitido en login y refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // siempre "bearer"
	ExpiresIn    int    `json:"expires_in"` // segundos de vida del access token
}
