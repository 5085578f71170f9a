package referentie

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "zaakregister/pkg/domainerrors"
)

func newTestResolver(t *testing.T, handler http.Handler) (*Resolver, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	resolver := NewResolver(
		"http://zaakregister.local",
		[]string{"zaakregister.local"},
		[]Service{{Label: "catalogi", APIRoot: server.URL, AuthToken: "peer-token"}},
		5*time.Second,
		nil,
	)
	return resolver, server
}

func TestGetValidatesShape(t *testing.T) {
	resolver, server := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url": "x", "zaaktype": "y"}`))
	}))

	_, err := resolver.Get(context.Background(), KindStatustype, server.URL+"/statustypen/abc")
	assert.True(t, derrors.Is(err, derrors.CodeInvalidResource))
}

func TestGetUnknownService(t *testing.T) {
	resolver, _ := newTestResolver(t, http.NotFoundHandler())

	_, err := resolver.Get(context.Background(), KindZaaktype, "https://elders.example.org/zaaktypen/1")
	assert.True(t, derrors.Is(err, derrors.CodeUnknownService))
}

func TestGetNonJSONIsInvalidResource(t *testing.T) {
	resolver, server := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>niet json</html>"))
	}))

	_, err := resolver.Get(context.Background(), KindZaaktype, server.URL+"/zaaktypen/1")
	assert.True(t, derrors.Is(err, derrors.CodeInvalidResource))
}

func TestGetMemoisesWithinRequest(t *testing.T) {
	var calls atomic.Int32
	resolver, server := newTestResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer peer-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"u","zaaktype":"z","isEindstatus":true}`))
	}))

	ctx := WithRequestCache(context.Background())
	url := server.URL + "/statustypen/xyz"
	for i := 0; i < 3; i++ {
		body, err := resolver.Get(ctx, KindStatustype, url)
		require.NoError(t, err)
		assert.Equal(t, true, body["isEindstatus"])
	}
	assert.Equal(t, int32(1), calls.Load())

	// A fresh request context fetches again.
	_, err := resolver.Get(WithRequestCache(context.Background()), KindStatustype, url)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestIsLocal(t *testing.T) {
	resolver, _ := newTestResolver(t, http.NotFoundHandler())

	assert.True(t, resolver.IsLocal("http://zaakregister.local/zaken/api/v1/zaken/x"))
	assert.True(t, resolver.IsLocal("https://zaakregister.local/catalogi/api/v1/zaaktypen/x"))
	assert.False(t, resolver.IsLocal("https://elders.example.org/zaaktypen/x"))
}

func TestExtractUUID(t *testing.T) {
	id := uuid.New()
	got, err := ExtractUUID("http://zaakregister.local/zaken/api/v1/zaken/" + id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ExtractUUID("http://zaakregister.local/zaken/api/v1/zaken/geen-uuid")
	assert.True(t, derrors.Is(err, derrors.CodeBadURL))
}

func TestValidateURL(t *testing.T) {
	resolver, server := newTestResolver(t, http.NotFoundHandler())

	assert.NoError(t, resolver.ValidateURL(server.URL+"/zaaktypen/1"))
	assert.NoError(t, resolver.ValidateURL("http://zaakregister.local/zaaktypen/1"))
	assert.True(t, derrors.Is(resolver.ValidateURL("niet-absoluut"), derrors.CodeBadURL))
	assert.True(t, derrors.Is(resolver.ValidateURL("https://elders.example.org/x"), derrors.CodeUnknownService))
}
