package dto

type LoginRequest struct {
	AccessCode string `json:"access_code" validate:"required,min=4"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Operator    string `json:"operator"`
}
