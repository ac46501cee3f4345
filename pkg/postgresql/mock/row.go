package mock

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
)

// Row is a pgx.Row that scans fixed values, used to stub QueryRow.
type Row struct {
	values []any
	err    error
}

var _ pgx.Row = (*Row)(nil)

// NewRow returns a row scanning values in order. A nil value scans as the zero value.
func NewRow(values ...any) *Row {
	return &Row{values: values}
}

// NewErrRow returns a row whose Scan fails with err, e.g. pgx.ErrNoRows.
func NewErrRow(err error) *Row {
	return &Row{err: err}
}

// Scan implements pgx.Row.
func (r *Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("mock row: %d destinations for %d values", len(dest), len(r.values))
	}

	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Ptr || target.IsNil() {
			return fmt.Errorf("mock row: destination %d is not a pointer", i)
		}
		target = target.Elem()

		if r.values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}

		value := reflect.ValueOf(r.values[i])
		if target.Kind() == reflect.Ptr && value.Kind() != reflect.Ptr {
			ptr := reflect.New(target.Type().Elem())
			if !value.Type().ConvertibleTo(ptr.Elem().Type()) {
				return fmt.Errorf("mock row: cannot scan %s into %s", value.Type(), target.Type())
			}
			ptr.Elem().Set(value.Convert(ptr.Elem().Type()))
			target.Set(ptr)
			continue
		}
		if !value.Type().ConvertibleTo(target.Type()) {
			return fmt.Errorf("mock row: cannot scan %s into %s", value.Type(), target.Type())
		}
		target.Set(value.Convert(target.Type()))
	}
	return nil
}
