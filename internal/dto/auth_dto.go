package dto

// RegisterRequest represents the request to create an account
// @Description role defaults to EMPLOYEE when omitted
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"Kim Minji"`
	Email    string `json:"email" binding:"required,email,max=255" example:"minji@example.com"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN EMPLOYEE" example:"EMPLOYEE"`
}

// LoginRequest represents the request to sign in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"minji@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// AuthResponse carries a bearer token and the signed-in user
type AuthResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  UserResponse `json:"user"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message" example:"Logged out"`
}
