// Package store is the record-store layer. It owns every query the
// services run and translates driver failures into the apperr taxonomy, so
// callers only ever see typed outcomes. Multi-record writes go through
// WithTx, which applies them atomically or not at all.
package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"backoffice-service/internal/apperr"
)

// Store wraps the database handle. All entity accessors hang off it.
type Store struct {
	db *gorm.DB
}

// New creates a store over the given database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithTx runs fn inside a transaction. Every store call made through the
// passed Store is part of the same atomic apply; any error rolls the whole
// batch back.
func (s *Store) WithTx(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// translate maps a gorm/driver error for entity to an apperr kind.
func translate(entity string, key interface{}, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entity, key)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// Uniqueness is validated before the write; hitting the constraint
		// means a concurrent writer got there first.
		return apperr.Duplicate(entity, "unique key", fmt.Sprint(key))
	case isWriteConflict(err):
		return apperr.Conflict(entity)
	default:
		return err
	}
}

func isWriteConflict(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 40001") ||
		strings.Contains(msg, "SQLSTATE 40P01") ||
		strings.Contains(msg, "database is locked")
}

var sortColumnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Page describes pagination and sorting for list queries. Zero values fall
// back to the first page of ten rows ordered by id ascending.
type Page struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	size := p.Size
	if size <= 0 {
		size = 10
	}
	page := p.Page
	if page < 0 {
		page = 0
	}
	column := p.SortBy
	if !sortColumnPattern.MatchString(column) {
		column = "id"
	}
	dir := "ASC"
	if strings.EqualFold(p.SortDir, "desc") {
		dir = "DESC"
	}
	return db.Order(column + " " + dir).Offset(page * size).Limit(size)
}
