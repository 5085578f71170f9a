// Package domainerrors carries machine-readable error codes across service
// boundaries so the HTTP layer can translate them into the standard error
// envelope without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error category on the wire.
type Code string

const (
	// Validation (HTTP 400).
	CodeRequired               Code = "required"
	CodeInvalid                Code = "invalid"
	CodeBadURL                 Code = "bad-url"
	CodeInvalidResource        Code = "invalid-resource"
	CodeUnknownService         Code = "unknown-service"
	CodeZaaktypeMismatch       Code = "zaaktype-mismatch"
	CodeInvalidDeelzaaktype    Code = "invalid-deelzaaktype"
	CodeSelfForbidden          Code = "self-forbidden"
	CodeDeelzaakAlsHoofdzaak   Code = "deelzaak-als-hoofdzaak"
	CodeIdentificatieNietUniek Code = "identificatie-niet-uniek"
	CodeMissingZtIotRelation   Code = "missing-zaaktype-informatieobjecttype-relation"
	CodeBetalingNvt            Code = "betaling-nvt"
	CodeInvalidProducts        Code = "invalid-products-services"
	CodeDateInFuture           Code = "date-in-future"
	CodeArchiefactiedatum      Code = "archiefactiedatum-error"
	CodeDocumentsNotArchived   Code = "documents-not-archived"
	CodeIOLocked               Code = "informatieobject-locked"
	CodeGebruiksrechtUnset     Code = "indicatiegebruiksrecht-unset"
	CodeEindstatusRequired     Code = "eindstatus-required"
	CodeMaxOccurences          Code = "max-occurences"
	CodeOverigeRelatieRequired Code = "overigerelatie-required"
	CodeEindeVoorBegin         Code = "einde-geldigheid-before-begin-geldigheid"
	CodeIndicatieMachtiging    Code = "indicatie-machtiging-invalid"
	CodeInvalidZaakobject      Code = "invalid-zaakobject"
	CodeMissingObjectTypeOver  Code = "missing-object-type-overige"
	CodeObjectTypeOverUsage    Code = "invalid-object-type-overige-usage"
	CodeImmutableField         Code = "wijzigen-niet-toegelaten"
	CodeResultaatOntbreekt     Code = "resultaat-does-not-exist"
	CodePendingRelations       Code = "pending-relations"

	// Authorization (HTTP 403).
	CodePermissionDenied Code = "permission_denied"
	CodeJWTExpired       Code = "jwt-expired"

	// Not authenticated (HTTP 401).
	CodeNotAuthenticated Code = "not_authenticated"

	// Not found (HTTP 404).
	CodeNotFound Code = "not_found"

	// Everything else (HTTP 500).
	CodeInternal Code = "internal"
)

// InvalidParam describes one offending request field in a 400 response.
type InvalidParam struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Error is the domain error type used throughout the services.
type Error struct {
	Code          Code
	Detail        string
	InvalidParams []InvalidParam
}

func (e *Error) Error() string {
	if len(e.InvalidParams) > 0 {
		return fmt.Sprintf("%s: %s (%d invalid params)", e.Code, e.Detail, len(e.InvalidParams))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// New builds a domain error with a top-level code.
func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

// Newf is New with formatting.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// NewValidation aggregates field-level errors under the top-level "invalid"
// code, matching the envelope used for 400 responses.
func NewValidation(params ...InvalidParam) *Error {
	return &Error{Code: CodeInvalid, Detail: "Invalid input.", InvalidParams: params}
}

// Param is a convenience constructor for one invalid request field.
func Param(name string, code Code, reason string) InvalidParam {
	return InvalidParam{Name: name, Code: string(code), Reason: reason}
}

// Is reports whether err is a domain error carrying the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		for _, p := range de.InvalidParams {
			if p.Code == string(code) {
				return true
			}
		}
	}
	return false
}

// From extracts the domain error from err, wrapping unknown errors as
// internal so handlers always have an envelope to write.
func From(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Code: CodeInternal, Detail: err.Error()}
}

// ToHTTPStatus maps a code to the HTTP status the envelope is served with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodePermissionDenied, CodeJWTExpired:
		return http.StatusForbidden
	case CodeNotAuthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
