package autorisaties

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"zaakregister/pkg/domainerrors"
	"zaakregister/pkg/problems"
)

// TokenValidator validates a bearer token and yields its client_id.
type TokenValidator interface {
	Validate(tokenString string) (string, error)
}

type contextKeyApplicatie struct{}

// ContextKeyApplicatie is exported for use in handlers and tests.
var ContextKeyApplicatie = contextKeyApplicatie{}

// GetApplicatie retrieves the authenticated application from the context.
func GetApplicatie(ctx context.Context) *Applicatie {
	app, ok := ctx.Value(ContextKeyApplicatie).(*Applicatie)
	if !ok {
		return nil
	}
	return app
}

// WithApplicatie places an application in the context. Used by tests that
// exercise handlers without the middleware chain.
func WithApplicatie(ctx context.Context, app *Applicatie) context.Context {
	return context.WithValue(ctx, ContextKeyApplicatie, app)
}

// RequireAuth authenticates the request by its bearer token and resolves the
// calling application. A client_id without a registered application still
// passes authentication; it carries no grants, so scope checks deny it later.
func RequireAuth(validator TokenValidator, store Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token")
				problems.Write(w, r, domainerrors.New(domainerrors.CodeNotAuthenticated,
					"Authenticatiegegevens zijn niet opgegeven."))
				return
			}

			clientID, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token", "error", err)
				problems.Write(w, r, err)
				return
			}

			app, err := store.GetByClientID(ctx, clientID)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					logger.ErrorContext(ctx, "failed to load applicatie", "error", err, "client_id", clientID)
					problems.Write(w, r, err)
					return
				}
				app = &Applicatie{ClientIDs: []string{clientID}, Label: clientID}
			}

			next.ServeHTTP(w, r.WithContext(WithApplicatie(ctx, app)))
		})
	}
}
