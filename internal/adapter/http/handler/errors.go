package handler

import "net/http"

func errorResponse(w http.ResponseWriter, status int, message any) {
	env := envelope{"error": message}

	if err := writeJSON(w, status, env, nil); err != nil {
		w.WriteHeader(500)
	}
}

// failedValidationResponse returns 422 for requests that parsed fine but
// carry values the server cannot act on.
func failedValidationResponse(w http.ResponseWriter, errors map[string]string) {
	errorResponse(w, http.StatusUnprocessableEntity, errors)
}

func badRequestResponse(w http.ResponseWriter, message any) {
	errorResponse(w, http.StatusBadRequest, message)
}

func serviceErrorResponse(w http.ResponseWriter, err error) {
	status := GetCode(err)
	if status == http.StatusInternalServerError {
		errorResponse(w, status, "the server encountered a problem and could not process your request")
		return
	}
	errorResponse(w, status, err.Error())
}
