package rest

import "net/http"

// ApiErr is the error shape services return and the HTTP error handler
// renders. Code is the HTTP status to answer with.
type ApiErr struct {
	Message string   `json:"message"`
	Err     string   `json:"error"`
	Code    int      `json:"code"`
	Causes  []Causes `json:"causes,omitempty"`
}

type Causes struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ApiErr) Error() string {
	return e.Message
}

func NewApiErr(message string, err string, code int, causes []Causes) *ApiErr {
	return &ApiErr{
		Message: message,
		Err:     err,
		Code:    code,
		Causes:  causes,
	}
}

func NewBadRequestError(message string) *ApiErr {
	return NewApiErr(message, "bad_request", http.StatusBadRequest, nil)
}

func NewBadRequestValidationError(message string, causes []Causes) *ApiErr {
	return NewApiErr(message, "bad_request", http.StatusBadRequest, causes)
}

func NewUnauthorizedRequestError(message string) *ApiErr {
	return NewApiErr(message, "unauthorized", http.StatusUnauthorized, nil)
}

func NewNotFoundError(message string) *ApiErr {
	return NewApiErr(message, "not_found", http.StatusNotFound, nil)
}

func NewUnprocessableEntity(message string) *ApiErr {
	return NewApiErr(message, "unprocessable_entity", http.StatusUnprocessableEntity, nil)
}

func NewConflictError(message string) *ApiErr {
	return NewApiErr(message, "conflict", http.StatusConflict, nil)
}

func NewInternalServerError(message string) *ApiErr {
	return NewApiErr(message, "internal_server_error", http.StatusInternalServerError, nil)
}

// NewBadGatewayError covers upstream API failures (catalog, mail) that are
// surfaced to the user without retry.
func NewBadGatewayError(message string) *ApiErr {
	return NewApiErr(message, "bad_gateway", http.StatusBadGateway, nil)
}
