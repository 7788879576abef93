package types

import "fmt"

// Error types used across handlers and middleware
const (
	ErrTypeSession    = "data.authorization.session"
	ErrTypeAdmin      = "data.authorization.admin"
	ErrTypeInput      = "data.validation.input"
	ErrTypeStatus     = "data.validation.status"
	ErrTypeBot        = "data.validation.bot"
	ErrTypeNotFound   = "data.notfound"
	ErrTypeServer     = "data.server"
	ErrTypeCalculator = "calculator.input"
	ErrTypeVersion    = "version"
)

// CustomError is rendered by the global error handler with its code and type
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
