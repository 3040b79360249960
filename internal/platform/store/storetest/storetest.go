// Package storetest provides scripted in-memory store seams for package tests
package storetest

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"socialfeed/internal/platform/store"
)

// Call is one statement seen by a Queryer
type Call struct {
	SQL  string
	Args []any
}

// Result is what a Handler returns for a statement
type Result struct {
	Rows [][]any
	Cols []string
	Err  error
}

// Handler scripts the response to a statement
type Handler func(ctx context.Context, sql string, args []any) Result

// Queryer is a store.RowQuerier that records calls and answers from Handler
type Queryer struct {
	Handler Handler

	mu    sync.Mutex
	calls []Call
}

// Calls returns a copy of the recorded statements
func (q *Queryer) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Call(nil), q.calls...)
}

func (q *Queryer) run(ctx context.Context, sql string, args []any) Result {
	q.mu.Lock()
	q.calls = append(q.calls, Call{SQL: sql, Args: args})
	q.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	if q.Handler == nil {
		return Result{}
	}
	return q.Handler(ctx, sql, args)
}

// Exec implements store.RowQuerier
func (q *Queryer) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	res := q.run(ctx, sql, args)
	return tag(len(res.Rows)), res.Err
}

// Query implements store.RowQuerier
func (q *Queryer) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	res := q.run(ctx, sql, args)
	if res.Err != nil {
		return nil, res.Err
	}
	return &Rows{data: res.Rows, cols: res.Cols}, nil
}

// QueryRow implements store.RowQuerier
func (q *Queryer) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	res := q.run(ctx, sql, args)
	return row{res: res}
}

// Runner is a store.TxRunner whose transactions reuse the same Queryer
type Runner struct {
	Queryer

	// BeginErr fails every Tx/ReadTx before fn runs
	BeginErr error

	mu         sync.Mutex
	reads      int
	writes     int
	rolledBack int
}

// Tx implements store.TxRunner
func (r *Runner) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	r.mu.Lock()
	r.writes++
	r.mu.Unlock()
	return r.finish(fn)
}

// ReadTx implements store.TxRunner
func (r *Runner) ReadTx(_ context.Context, fn func(q store.RowQuerier) error) error {
	r.mu.Lock()
	r.reads++
	r.mu.Unlock()
	return r.finish(fn)
}

func (r *Runner) finish(fn func(q store.RowQuerier) error) error {
	if r.BeginErr != nil {
		return r.BeginErr
	}
	if err := fn(&r.Queryer); err != nil {
		r.mu.Lock()
		r.rolledBack++
		r.mu.Unlock()
		return err
	}
	return nil
}

// ReadTxCount returns how many read snapshots were opened
func (r *Runner) ReadTxCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

// TxCount returns how many read-write transactions were opened
func (r *Runner) TxCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// RollbackCount returns how many transactions ended in error
func (r *Runner) RollbackCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rolledBack
}

// Rows iterates scripted rows
type Rows struct {
	data [][]any
	cols []string
	i    int
	err  error
}

// NewRows builds Rows directly, for scanners tested without a Queryer
func NewRows(data ...[]any) *Rows { return &Rows{data: data} }

// Next implements store.Rows
func (r *Rows) Next() bool {
	if r.err != nil || r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

// Scan implements store.Rows
func (r *Rows) Scan(dst ...any) error {
	if r.i == 0 || r.i > len(r.data) {
		return fmt.Errorf("storetest: Scan without current row")
	}
	return assign(r.data[r.i-1], dst)
}

// Err implements store.Rows
func (r *Rows) Err() error { return r.err }

// Close implements store.Rows
func (r *Rows) Close() {}

// Columns implements store.Rows
func (r *Rows) Columns() []string { return r.cols }

type row struct{ res Result }

func (r row) Scan(dst ...any) error {
	if r.res.Err != nil {
		return r.res.Err
	}
	if len(r.res.Rows) == 0 {
		return ErrNoRows
	}
	return assign(r.res.Rows[0], dst)
}

// ErrNoRows is returned by QueryRow().Scan when the script returned nothing
var ErrNoRows = fmt.Errorf("storetest: no rows")

type tag int64

func (t tag) String() string      { return fmt.Sprintf("SELECT %d", int64(t)) }
func (t tag) RowsAffected() int64 { return int64(t) }

// assign copies src values into dst pointers, converting between compatible kinds
func assign(src []any, dst []any) error {
	if len(src) != len(dst) {
		return fmt.Errorf("storetest: row has %d values, scan wants %d", len(src), len(dst))
	}
	for i := range dst {
		dv := reflect.ValueOf(dst[i])
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("storetest: scan target %d is not a pointer", i)
		}
		target := dv.Elem()
		if src[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		sv := reflect.ValueOf(src[i])
		switch {
		case sv.Type().AssignableTo(target.Type()):
			target.Set(sv)
		case sv.Type().ConvertibleTo(target.Type()):
			target.Set(sv.Convert(target.Type()))
		default:
			return fmt.Errorf("storetest: cannot scan %T into %s", src[i], target.Type())
		}
	}
	return nil
}
