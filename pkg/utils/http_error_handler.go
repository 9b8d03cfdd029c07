package utils

import "net/http"

// WriteError sends the standard error envelope. The shape mirrors the
// success envelope's status/message fields so clients parse one format.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSONStatus(w, map[string]interface{}{
		"status":  "error",
		"message": message,
	}, statusCode)
}
