package domainerrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesTopLevelCode(t *testing.T) {
	err := New(CodeZaaktypeMismatch, "statustype hoort niet bij het zaaktype")
	assert.True(t, Is(err, CodeZaaktypeMismatch))
	assert.False(t, Is(err, CodeNotFound))
}

func TestIsMatchesParamCode(t *testing.T) {
	err := NewValidation(Param("laatsteBetaaldatum", CodeBetalingNvt, "betalingsindicatie is nvt"))
	assert.True(t, Is(err, CodeBetalingNvt))
	assert.True(t, Is(err, CodeInvalid))
}

func TestIsSeesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("save status: %w", New(CodeDateInFuture, "datumStatusGezet ligt in de toekomst"))
	assert.True(t, Is(err, CodeDateInFuture))
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	de := From(fmt.Errorf("boom"))
	assert.Equal(t, CodeInternal, de.Code)
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodePermissionDenied: http.StatusForbidden,
		CodeJWTExpired:       http.StatusForbidden,
		CodeNotAuthenticated: http.StatusUnauthorized,
		CodeNotFound:         http.StatusNotFound,
		CodeInternal:         http.StatusInternalServerError,
		CodeZaaktypeMismatch: http.StatusBadRequest,
		CodeBadURL:           http.StatusBadRequest,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
