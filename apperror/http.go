package apperror

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes `data` as a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil { // Avoid writing nil, which would produce a "null" body
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError uses the apperror system to write standardized error responses.
// Anything that is not an *AppError is reported as a generic 500 so store or driver
// messages never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := FromError(err)
	if !ok {
		appErr = NewInternalError("an unexpected error occurred", err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
