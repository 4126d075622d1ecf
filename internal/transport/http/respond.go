package http

import (
	"encoding/json"
	"net/http"

	"sigs.k8s.io/controller-runtime/pkg/log"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.FromContext(r.Context()).Error(err, "Failed to encode JSON response")
	}
}

func writeInternalError(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, r, http.StatusInternalServerError, apiv1.ErrorResponse{
		Error:   "Internal Server Error",
		Message: message,
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusNotFound, apiv1.ErrorResponse{
		Error: "Not Found",
		Path:  r.URL.Path,
	})
}
