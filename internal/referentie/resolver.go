package referentie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"zaakregister/internal/platform/metrics"
	derrors "zaakregister/pkg/domainerrors"
)

// Service is a registered peer API. Requests to URLs under APIRoot carry the
// configured token.
type Service struct {
	Label     string
	APIRoot   string
	AuthToken string
}

// Resolver dereferences absolute URLs into peer APIs and recognises local
// URLs so they can be served from the database instead.
type Resolver struct {
	client       *http.Client
	services     []Service
	apiRoot      string
	allowedHosts map[string]bool
	metrics      *metrics.Metrics
}

// NewResolver builds a resolver. apiRoot is our own base URL; URLs under it
// (or under one of allowedHosts) are local references.
func NewResolver(apiRoot string, allowedHosts []string, services []Service, timeout time.Duration, m *metrics.Metrics) *Resolver {
	hosts := make(map[string]bool, len(allowedHosts))
	for _, h := range allowedHosts {
		hosts[h] = true
	}
	return &Resolver{
		client:       &http.Client{Timeout: timeout},
		services:     services,
		apiRoot:      strings.TrimSuffix(apiRoot, "/"),
		allowedHosts: hosts,
		metrics:      m,
	}
}

// IsLocal reports whether the URL points at this installation.
func (r *Resolver) IsLocal(rawURL string) bool {
	if strings.HasPrefix(rawURL, r.apiRoot+"/") || rawURL == r.apiRoot {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return r.allowedHosts[parsed.Host]
}

// ExtractUUID pulls the resource UUID out of a local URL. The hyperlink
// format always ends in the UUID path segment.
func ExtractUUID(rawURL string) (uuid.UUID, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return uuid.Nil, derrors.Newf(derrors.CodeBadURL, "ongeldige URL: %s", rawURL)
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 {
		return uuid.Nil, derrors.Newf(derrors.CodeBadURL, "ongeldige URL: %s", rawURL)
	}
	id, err := uuid.Parse(segments[len(segments)-1])
	if err != nil {
		return uuid.Nil, derrors.Newf(derrors.CodeBadURL, "geen UUID in URL: %s", rawURL)
	}
	return id, nil
}

func (r *Resolver) serviceFor(rawURL string) *Service {
	for i := range r.services {
		if strings.HasPrefix(rawURL, r.services[i].APIRoot) {
			return &r.services[i]
		}
	}
	return nil
}

// ValidateURL checks that a URL is well-formed and belongs to a known
// service, without fetching it.
func (r *Resolver) ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return derrors.Newf(derrors.CodeBadURL, "ongeldige URL: %s", rawURL)
	}
	if r.IsLocal(rawURL) {
		return nil
	}
	if r.serviceFor(rawURL) == nil {
		return derrors.Newf(derrors.CodeUnknownService, "geen service geconfigureerd voor %s", rawURL)
	}
	return nil
}

// Get fetches a remote resource, validates its shape for the kind, and
// memoises the body in the request cache.
func (r *Resolver) Get(ctx context.Context, kind Kind, rawURL string) (map[string]any, error) {
	cache := cacheFrom(ctx)
	if body, ok := cache.get(rawURL); ok {
		if r.metrics != nil {
			r.metrics.RemoteResolveCacheHits.Inc()
		}
		return body, nil
	}

	if err := r.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	service := r.serviceFor(rawURL)
	if service == nil {
		return nil, derrors.Newf(derrors.CodeUnknownService, "geen service geconfigureerd voor %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, derrors.Newf(derrors.CodeBadURL, "ongeldige URL: %s", rawURL)
	}
	req.Header.Set("Accept", "application/json")
	if service.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+service.AuthToken)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, derrors.Newf(derrors.CodeInvalidResource, "ophalen van %s mislukt: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, derrors.Newf(derrors.CodeInvalidResource, "ophalen van %s gaf status %d", rawURL, resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, derrors.Newf(derrors.CodeInvalidResource, "%s leverde geen geldige JSON", rawURL)
	}
	if missing := ValidateShape(kind, body); len(missing) > 0 {
		return nil, derrors.Newf(derrors.CodeInvalidResource,
			"%s voldoet niet aan het %s schema (ontbrekend: %s)", rawURL, kind, strings.Join(missing, ", "))
	}

	cache.put(rawURL, body)
	if r.metrics != nil {
		r.metrics.RemoteResolves.WithLabelValues(string(kind)).Inc()
	}
	return body, nil
}

// Post creates a resource on a peer API. Used for the two-phase
// cross-writes towards the documenten, contactmomenten and verzoeken APIs.
func (r *Resolver) Post(ctx context.Context, endpoint string, payload map[string]any) (map[string]any, error) {
	service := r.serviceFor(endpoint)
	if service == nil {
		return nil, derrors.Newf(derrors.CodeUnknownService, "geen service geconfigureerd voor %s", endpoint)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, derrors.Newf(derrors.CodeBadURL, "ongeldige URL: %s", endpoint)
	}
	req.Header.Set("Content-Type", "application/json")
	if service.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+service.AuthToken)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, derrors.Newf(derrors.CodePendingRelations, "aanmaken op %s mislukt: %v", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, derrors.Newf(derrors.CodePendingRelations, "aanmaken op %s gaf status %d", endpoint, resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, derrors.Newf(derrors.CodeInvalidResource, "%s leverde geen geldige JSON", endpoint)
	}
	return body, nil
}

// Delete removes a resource on a peer API.
func (r *Resolver) Delete(ctx context.Context, rawURL string) error {
	service := r.serviceFor(rawURL)
	if service == nil {
		return derrors.Newf(derrors.CodeUnknownService, "geen service geconfigureerd voor %s", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, rawURL, nil)
	if err != nil {
		return derrors.Newf(derrors.CodeBadURL, "ongeldige URL: %s", rawURL)
	}
	if service.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+service.AuthToken)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return derrors.Newf(derrors.CodePendingRelations, "verwijderen van %s mislukt: %v", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return derrors.Newf(derrors.CodePendingRelations, "verwijderen van %s gaf status %d", rawURL, resp.StatusCode)
	}
	return nil
}
