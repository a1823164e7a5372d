package petstore

import (
	"fmt"
	"net/http"
)

func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

func IsClientError(code int) bool {
	return code >= 400 && code < 500
}

func IsServerError(code int) bool {
	return code >= 500 && code < 600
}

// StatusText formats a status code for messages, such as "404 Not Found".
func StatusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("%d %s", code, text)
	}
	return fmt.Sprintf("%d", code)
}
