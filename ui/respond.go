package ui

import (
	"encoding/json"
	"net/http"

	"panelscope/internal/errors"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}
	respondJSON(w, status, errorBody{Error: err.Error(), Code: errors.GetCode(err)})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondError(w, errors.InvalidInput(message))
}
