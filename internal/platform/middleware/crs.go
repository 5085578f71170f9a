package middleware

import (
	"net/http"
)

// DefaultCRS is the only coordinate reference system the API serves.
const DefaultCRS = "EPSG:4326"

func writeCRSError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"code":"crs","title":"CRS error","detail":"` + detail + `"}`))
}

// RequireCRS enforces the Accept-Crs and Content-Crs headers on resources
// that carry geometry. A missing header is a failed precondition; a header
// naming another CRS is not acceptable/supported.
func RequireCRS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			crs := r.Header.Get("Content-Crs")
			if crs == "" {
				writeCRSError(w, http.StatusPreconditionFailed, "Content-Crs header ontbreekt")
				return
			}
			if crs != DefaultCRS {
				writeCRSError(w, http.StatusUnsupportedMediaType, "CRS wordt niet ondersteund")
				return
			}
		}
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			accept := r.Header.Get("Accept-Crs")
			if accept == "" {
				writeCRSError(w, http.StatusPreconditionFailed, "Accept-Crs header ontbreekt")
				return
			}
			if accept != DefaultCRS {
				writeCRSError(w, http.StatusNotAcceptable, "CRS wordt niet geaccepteerd")
				return
			}
		}
		w.Header().Set("Content-Crs", DefaultCRS)
		next.ServeHTTP(w, r)
	})
}
