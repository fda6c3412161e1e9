package request

// RegisterRequest represents the request body for creating a user account.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	RiskProfile     string `json:"riskProfile"`
}

// LoginRequest represents the request body for credential verification.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
