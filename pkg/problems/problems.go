// Package problems renders domain errors as RFC 7807 problem documents, the
// error envelope the ZGW APIs use.
package problems

import (
	"encoding/json"
	"net/http"

	"zaakregister/pkg/domainerrors"
)

// InvalidParam points at a single offending request field.
type InvalidParam struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Document is an RFC 7807 body with the ZGW code extension.
type Document struct {
	Type          string         `json:"type,omitempty"`
	Code          string         `json:"code"`
	Title         string         `json:"title"`
	Status        int            `json:"status"`
	Detail        string         `json:"detail"`
	Instance      string         `json:"instance,omitempty"`
	InvalidParams []InvalidParam `json:"invalidParams,omitempty"`
}

var titles = map[int]string{
	http.StatusBadRequest:          "Invalid input.",
	http.StatusUnauthorized:        "Unauthorized.",
	http.StatusForbidden:           "You do not have permission to perform this action.",
	http.StatusNotFound:            "Not found.",
	http.StatusInternalServerError: "Internal server error.",
}

// Write renders err on w. Non-domain errors become opaque 500s.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	dErr := domainerrors.From(err)
	status := domainerrors.ToHTTPStatus(dErr.Code)

	doc := Document{
		Code:     string(dErr.Code),
		Title:    titles[status],
		Status:   status,
		Detail:   dErr.Detail,
		Instance: "urn:uuid:" + requestURN(r),
	}
	if status == http.StatusInternalServerError {
		doc.Detail = "Er is een interne fout opgetreden."
	}
	for _, p := range dErr.InvalidParams {
		doc.InvalidParams = append(doc.InvalidParams, InvalidParam{
			Name:   p.Name,
			Code:   p.Code,
			Reason: p.Reason,
		})
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(doc)
}

func requestURN(r *http.Request) string {
	if r == nil {
		return ""
	}
	if id := r.Header.Get("X-Request-Id"); id != "" {
		return id
	}
	return ""
}
