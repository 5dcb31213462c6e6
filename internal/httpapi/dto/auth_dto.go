package dto

// Data Transfer Objects for the signup/token handshake

// SignupRequest: payload for requesting registration. No password —
// proof of control of the email is the whole credential.
type SignupRequest struct {
	Username string `json:"username" binding:"required,max=150,username"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignupResponse: public fields of the created user
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: the bearer access token
type TokenResponse struct {
	Token string `json:"token"`
}
