// Package apperr defines the error taxonomy shared by the store, the
// services and the HTTP layer. Every validation or relationship failure is
// reported as one of these kinds, never as a generic error; handlers map
// kinds to HTTP statuses with HTTPStatus.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds. Match with errors.Is.
var (
	ErrDuplicateKey           = errors.New("duplicate key")
	ErrInvalidRange           = errors.New("invalid range")
	ErrMissingField           = errors.New("missing field")
	ErrNotFound               = errors.New("not found")
	ErrNotOwned               = errors.New("not owned")
	ErrUnknownVariant         = errors.New("unknown variant")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// Error carries a kind plus the entity/field context it applies to.
type Error struct {
	kind   error
	detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.detail)
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Detail returns the human-readable context of the error.
func (e *Error) Detail() string {
	return e.detail
}

func wrap(kind error, format string, args ...interface{}) error {
	return &Error{kind: kind, detail: fmt.Sprintf(format, args...)}
}

// Duplicate reports a unique-constraint violation on entity.field.
func Duplicate(entity, field, value string) error {
	return wrap(ErrDuplicateKey, "%s with %s %q already exists", entity, field, value)
}

// Missing reports a required field that was absent.
func Missing(entity, field string) error {
	return wrap(ErrMissingField, "%s requires %s", entity, field)
}

// OutOfRange reports a numeric field outside its allowed bounds.
func OutOfRange(entity, field string, value, min, max int) error {
	return wrap(ErrInvalidRange, "%s %s %d outside [%d, %d]", entity, field, value, min, max)
}

// InvalidValue reports a field holding a value outside its allowed set.
func InvalidValue(entity, field, value string) error {
	return wrap(ErrInvalidRange, "%s %s %q is not allowed", entity, field, value)
}

// NotFound reports a missing entity by key.
func NotFound(entity string, key interface{}) error {
	return wrap(ErrNotFound, "%s %v does not exist", entity, key)
}

// NotOwned reports a relationship operation against a child that does not
// belong to the given parent.
func NotOwned(child string, childID uint, parent string, parentID uint) error {
	return wrap(ErrNotOwned, "%s %d does not belong to %s %d", child, childID, parent, parentID)
}

// UnknownVariant reports an unrecognized discriminator tag.
func UnknownVariant(tag string) error {
	return wrap(ErrUnknownVariant, "unrecognized person type %q", tag)
}

// Conflict reports a write conflict surfaced by the store. The caller
// decides whether to redo the whole validate-then-apply sequence.
func Conflict(entity string) error {
	return wrap(ErrConcurrentModification, "conflicting concurrent write on %s", entity)
}

// KindLabel names the error kind for metrics labels.
func KindLabel(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNotOwned):
		return "not_owned"
	case errors.Is(err, ErrUnknownVariant):
		return "unknown_variant"
	case errors.Is(err, ErrConcurrentModification):
		return "conflict"
	default:
		return "internal"
	}
}

// HTTPStatus maps an error kind to the status the REST layer responds with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateKey), errors.Is(err, ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrMissingField),
		errors.Is(err, ErrNotOwned), errors.Is(err, ErrUnknownVariant):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
