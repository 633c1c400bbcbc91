package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-contacts/models"
)

const contentTypeJSON = "application/json"

// WriteJSON writes data as a JSON response with statusCode and returns the
// number of body bytes written.
//
// If data cannot be marshaled the client gets 500 with the usual
// {"detail": ...} body and the marshal error is returned to the caller.
//
// Example usage:
//
//	WriteJSON(w, contacts, http.StatusOK)
//	WriteJSON(w, created, http.StatusCreated)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		n, _ := WriteDetail(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return n, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteDetail writes the error body shared by every endpoint:
// {"detail": detail}.
func WriteDetail(w http.ResponseWriter, detail string, statusCode int) (int, error) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)

	jsonData, _ := json.Marshal(models.Detail{Detail: detail})
	return w.Write(jsonData)
}
