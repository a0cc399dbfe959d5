package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every API reply
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func ok(w http.ResponseWriter, code int, message string, data any) {
	ResponseJSON(w, code, true, message, data, nil)
}

// fail writes status false; fields is the per-field error map, if any
func fail(w http.ResponseWriter, code int, message string, fields any) {
	ResponseJSON(w, code, false, message, nil, fields)
}

// 200
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ok(w, http.StatusOK, message, data)
}

// 201
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ok(w, http.StatusCreated, message, data)
}

// ResponseBadRequest also carries validation and conflict field errors
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	fail(w, http.StatusBadRequest, message, errors)
}

// 403, used for every auth failure including a missing token
func ResponseForbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, message, nil)
}

// 404
func ResponseNotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, message, nil)
}

// 413, the request body went past its cap
func ResponseTooLarge(w http.ResponseWriter, message string) {
	fail(w, http.StatusRequestEntityTooLarge, message, nil)
}

// 500
func ResponseInternalError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, message, nil)
}
