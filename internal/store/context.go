package store

import (
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"
)

type action int

const (
	actInsert action = iota
	actUpdate
	actDelete
)

type change struct {
	act    action
	target any
}

// Context stages entity mutations and commits them with Flush. Nothing
// reaches the store before Flush is called; a flush applies every staged
// change inside one transaction.
//
// A Context is not safe for concurrent use. Each logical unit of work should
// own its instance; reads through DB() may run at any time, including while a
// previous result set is still being filtered.
type Context struct {
	db      *gorm.DB
	pending []change
}

func New(db *gorm.DB) *Context { return &Context{db: db} }

// DB exposes the underlying connection for read-side composition.
func (c *Context) DB() *gorm.DB { return c.db }

func (c *Context) stage(act action, target any, op string) error {
	if isNil(target) {
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}
	c.pending = append(c.pending, change{act: act, target: target})
	return nil
}

// Add stages a single entity for insertion. The entity must be a pointer so
// generated keys can be written back on Flush.
func (c *Context) Add(entity any) error { return c.stage(actInsert, entity, "add") }

// AddRange stages a slice of entities for insertion as one statement.
func (c *Context) AddRange(entities any) error { return c.stage(actInsert, entities, "add range") }

// Remove stages a physical delete of an entity identified by its primary key.
func (c *Context) Remove(entity any) error { return c.stage(actDelete, entity, "remove") }

// RemoveRange stages a physical delete for every entity in the slice.
func (c *Context) RemoveRange(entities any) error { return c.stage(actDelete, entities, "remove range") }

// MarkModified stages a full-row update for an entity already persisted under
// its primary key.
func (c *Context) MarkModified(entity any) error { return c.stage(actUpdate, entity, "mark modified") }

// Flush commits every staged change in one transaction and reports the total
// number of affected rows. On success the stage is cleared; on failure it is
// kept and nothing has been written, so the next Flush replays the same
// changes. A long-lived Context that keeps a change that can never commit
// must drop it with Clear before staging further work.
func (c *Context) Flush() (int64, error) {
	if len(c.pending) == 0 {
		return 0, nil
	}
	var affected int64
	err := c.db.Transaction(func(tx *gorm.DB) error {
		for _, ch := range c.pending {
			if isEmptySlice(ch.target) {
				continue
			}
			var res *gorm.DB
			switch ch.act {
			case actInsert:
				res = tx.Create(ch.target)
			case actUpdate:
				res = tx.Save(ch.target)
			case actDelete:
				res = tx.Delete(ch.target)
			}
			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("flush: %w: %w", ErrPersistenceFailure, err)
	}
	c.pending = c.pending[:0]
	return affected, nil
}

// Clear drops every staged change without writing anything.
func (c *Context) Clear() { c.pending = c.pending[:0] }

// Find loads the row with the given primary key into dest. Absence is not an
// error; it is reported through the returned flag.
func (c *Context) Find(dest any, key ...any) (bool, error) {
	err := c.db.First(dest, key...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find: %w: %w", ErrPersistenceFailure, err)
	}
	return true, nil
}

// Transaction runs fn with a Context bound to one database transaction.
// Flushes issued inside become savepoints, so a failure anywhere rolls back
// every write fn performed.
func (c *Context) Transaction(fn func(*Context) error) error {
	return c.db.Transaction(func(tx *gorm.DB) error { return fn(New(tx)) })
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isEmptySlice(v any) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Slice && rv.Len() == 0
}
