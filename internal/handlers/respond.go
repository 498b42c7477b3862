package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"message": message})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
}

func serverError(w http.ResponseWriter, errorLog *log.Logger, err error) {
	if errorLog != nil {
		errorLog.Printf("%s\n%s", err.Error(), debug.Stack())
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"message": http.StatusText(http.StatusInternalServerError)})
}
