package httpdto

// RegisterRequest is used for POST /register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username" binding:"required"`
}

// RegisterResponse is returned after successful registration
type RegisterResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid"`
}

// LoginRequest is used for POST /login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
}

// UpdateUsernameRequest is used for PUT /update-username
type UpdateUsernameRequest struct {
	UserID      string `json:"userId" binding:"required"`
	NewUsername string `json:"newUsername" binding:"required"`
}
