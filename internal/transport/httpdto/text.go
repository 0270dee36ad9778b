package httpdto

// SubmitTextRequest is used for POST /submit-text
type SubmitTextRequest struct {
	UserID string `json:"userId" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// UpdateTextRequest is used for PUT /update-text/:userId
type UpdateTextRequest struct {
	Text string `json:"text" binding:"required"`
}
