package httpdto

type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewErrorResponse(err string, code string) ErrorResponse {
	return ErrorResponse{
		Error: err,
		Code:  code,
	}
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}
