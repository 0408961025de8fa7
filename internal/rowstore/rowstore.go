// Package rowstore abstracts the columnar spreadsheet backing the bot.
// All state the bot persists lives in named sheets of ordered string rows;
// the package exposes the handful of row operations the services need and a
// small error taxonomy separating "no such row" from transport failures.
package rowstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies adapter failures for callers.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindTransport
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is the adapter's failure type. NotFound is a normal outcome for
// lookups; Transport covers connectivity, auth and rate-limit trouble and is
// worth retrying later.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rowstore %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("rowstore %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a missing-row result rather than a
// failure.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

// KindOf extracts the error kind, defaulting to KindUnknown for foreign
// errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func notFound(op string) *Error {
	return &Error{Kind: KindNotFound, Op: op}
}

// RowUpdate targets one existing row in a batched write.
type RowUpdate struct {
	Row    int
	Values []string
}

// Store is the row-oriented contract the services consume. Rows and columns
// are 1-based; row 1 is the header.
type Store interface {
	ReadHeader(ctx context.Context, sheet string) ([]string, error)
	WriteHeader(ctx context.Context, sheet string, columns []string) error
	FindRowByValue(ctx context.Context, sheet string, column int, value string) (int, error)
	ReadRow(ctx context.Context, sheet string, row int) ([]string, error)
	ReadAllRows(ctx context.Context, sheet string) ([][]string, error)
	AppendRow(ctx context.Context, sheet string, values []string) error
	WriteRow(ctx context.Context, sheet string, row int, values []string) error
	BatchWrite(ctx context.Context, sheet string, updates []RowUpdate) error
}
