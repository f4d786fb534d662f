package errors

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error   string         `json:"error" example:"Invoice already exists"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse renders err for the API boundary. Unclassified errors
// collapse to a fixed message with no details.
func NewErrorResponse(err error) ErrorResponse {
	if KindOf(err) == nil {
		return ErrorResponse{Error: InternalServerErrorMessage}
	}

	resp := ErrorResponse{Error: DisplayMessage(err)}
	if details := SafeDetails(err); len(details) > 0 {
		resp.Details = details
	}
	return resp
}
