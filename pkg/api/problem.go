package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Problem is an RFC 9457 problem details document.
type Problem struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}

// statusForError maps a listing failure to an HTTP status. Kubernetes API
// errors keep their own code; everything else is a 500.
func statusForError(err error) int {
	var apiStatus apierrors.APIStatus
	if errors.As(err, &apiStatus) {
		if code := int(apiStatus.Status().Code); code >= 400 && code < 600 {
			return code
		}
	}
	switch {
	case apierrors.IsBadRequest(err), apierrors.IsInvalid(err):
		return http.StatusBadRequest
	case apierrors.IsForbidden(err):
		return http.StatusForbidden
	case apierrors.IsUnauthorized(err):
		return http.StatusUnauthorized
	case apierrors.IsNotFound(err):
		return http.StatusNotFound
	case apierrors.IsTimeout(err), apierrors.IsServerTimeout(err):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
