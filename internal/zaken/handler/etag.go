package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
)

// etagOf hashes the canonical JSON of a resource body. The tag changes with
// any visible field, including derived links.
func etagOf(v any) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`, nil
}

// respondConditional serves a detail read with an ETag, honouring
// If-None-Match. HEAD goes through the same path; net/http drops the body.
func (h *Handler) respondConditional(w http.ResponseWriter, r *http.Request, v any) {
	tag, err := etagOf(v)
	if err != nil {
		h.error(w, r, err)
		return
	}
	w.Header().Set("ETag", tag)
	if match := r.Header.Get("If-None-Match"); match != "" {
		for _, candidate := range strings.Split(match, ",") {
			candidate = strings.TrimSpace(candidate)
			if candidate == tag || candidate == "*" {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}
	respond(w, http.StatusOK, v)
}
