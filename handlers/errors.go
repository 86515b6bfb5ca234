package handlers

import (
	"net/http"

	"github.com/dmitrymomot/mailbridge"
)

// ErrorHandler renders every error as {"error": message}.
// HTTPErrors keep their status and message; anything else, panics and
// timeouts included, is logged and becomes a 500 "Erreur interne.".
func ErrorHandler(c mailbridge.Context, err error) error {
	if httpErr := mailbridge.AsHTTPError(err); httpErr != nil {
		return c.JSON(httpErr.StatusCode(), errorBody(httpErr.Message))
	}

	c.LogError("server error", "error", err)
	return c.JSON(http.StatusInternalServerError, errorBody(MsgInternal))
}

// NotFound answers unknown paths with a JSON 404.
func NotFound(c mailbridge.Context) error {
	return mailbridge.ErrNotFound(MsgNotFound)
}

// MethodNotAllowed answers known paths with the wrong method with a JSON 405.
func MethodNotAllowed(c mailbridge.Context) error {
	return mailbridge.ErrMethodNotAllowed(MsgMethodNotAllowed)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
