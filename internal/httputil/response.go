package httputil

// Response is the uniform body for every API endpoint. Successful requests
// carry a payload and confirmation messages, failed ones a list of error
// messages.
type Response struct {
	Data     any      `json:"data"`
	Messages []string `json:"messages"`
	Errors   []string `json:"errors"`
}

// Success builds a response for a payload with its confirmation messages.
func Success(data any, messages ...string) Response {
	return Response{
		Data:     data,
		Messages: messages,
		Errors:   []string{},
	}
}

// Failure builds a response carrying only error messages.
func Failure(errs ...string) Response {
	return Response{
		Messages: []string{},
		Errors:   errs,
	}
}
