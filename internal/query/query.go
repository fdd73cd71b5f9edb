// Package query is a generic composition layer over GORM: eager-load a set of
// relations, materialize the rows, then filter, group and project them with
// plain Go closures. Every shape returns a distinct, order-irrelevant result.
//
// The evaluation order is fixed: relations are joined before filtering so
// predicates may dereference joined fields, filtering happens before
// distinctness, and distinctness applies to rows for the raw shapes and to
// projected values for the projecting shapes.
package query

import (
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"github.com/mccreemainwoody/northwind/internal/store"
)

// Entity is implemented by every persisted model. EntityKey returns the
// primary key (a composite key struct where the table has one) and is the
// identity used for distinct filtering.
type Entity interface {
	EntityKey() any
}

// Relation names an eager-load path rooted at T, such as "Category" or the
// chained "Order.Employee". Tying the path to the entity type catches a
// relation used against the wrong root at compile time.
type Relation[T Entity] string

// Select returns the distinct rows of T that satisfy pred, with the given
// relations eagerly loaded. A nil pred accepts every row.
func Select[T Entity](db *gorm.DB, pred func(T) bool, rels ...Relation[T]) ([]T, error) {
	rows, err := fetch(db, rels)
	if err != nil {
		return nil, err
	}
	if pred == nil {
		pred = func(T) bool { return true }
	}
	seen := make(map[any]struct{}, len(rows))
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if !pred(row) {
			continue
		}
		k := row.EntityKey()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, row)
	}
	return out, nil
}

// SelectProject behaves like Select and then maps each row through project,
// returning the distinct projected values.
func SelectProject[T Entity, U comparable](db *gorm.DB, project func(T) U, pred func(T) bool, rels ...Relation[T]) ([]U, error) {
	if project == nil {
		return nil, fmt.Errorf("select: projection: %w", store.ErrInvalidArgument)
	}
	rows, err := Select(db, pred, rels...)
	if err != nil {
		return nil, err
	}
	vals := make([]U, 0, len(rows))
	for _, row := range rows {
		vals = append(vals, project(row))
	}
	return distinctValues(vals), nil
}

// GroupBy partitions the rows of T by key equality and returns the groups
// that satisfy pred (all of them when pred is nil). Every fetched row lands
// in exactly one group; groups keep first-seen key order.
func GroupBy[T Entity, K comparable](db *gorm.DB, key func(T) K, pred func(Group[K, T]) bool, rels ...Relation[T]) ([]Group[K, T], error) {
	if key == nil {
		return nil, fmt.Errorf("group by: key function: %w", store.ErrInvalidArgument)
	}
	rows, err := fetch(db, rels)
	if err != nil {
		return nil, err
	}
	index := make(map[K]int, len(rows))
	groups := make([]Group[K, T], 0)
	for _, row := range rows {
		k := key(row)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	if pred == nil {
		return groups, nil
	}
	kept := make([]Group[K, T], 0, len(groups))
	for _, g := range groups {
		if pred(g) {
			kept = append(kept, g)
		}
	}
	return kept, nil
}

// GroupByProject behaves like GroupBy and then maps each matching group
// through project, returning the distinct projected values.
func GroupByProject[T Entity, K comparable, U comparable](db *gorm.DB, key func(T) K, project func(Group[K, T]) U, pred func(Group[K, T]) bool, rels ...Relation[T]) ([]U, error) {
	if project == nil {
		return nil, fmt.Errorf("group by: projection: %w", store.ErrInvalidArgument)
	}
	groups, err := GroupBy(db, key, pred, rels...)
	if err != nil {
		return nil, err
	}
	vals := make([]U, 0, len(groups))
	for _, g := range groups {
		vals = append(vals, project(g))
	}
	return distinctValues(vals), nil
}

// fetch materializes all rows of T with the requested relations preloaded.
// It runs on a fresh session, so callers may issue further queries on the
// same connection while filtering the result.
func fetch[T Entity](db *gorm.DB, rels []Relation[T]) ([]T, error) {
	tx := db.Session(&gorm.Session{NewDB: true})
	for _, r := range rels {
		tx = tx.Preload(string(r))
	}
	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("load %T: %w: %w", zero, store.ErrPersistenceFailure, err)
	}
	return rows, nil
}

func distinctValues[U comparable](vals []U) []U {
	seen := make(map[any]struct{}, len(vals))
	out := make([]U, 0, len(vals))
	for _, v := range vals {
		k := identityOf(v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

// identityOf prefers entity identity over plain equality, so two copies of
// the same row materialized by different groups compare equal, the way they
// would under an ORM identity map.
func identityOf(v any) any {
	if v == nil {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}
	if e, ok := v.(Entity); ok {
		return e.EntityKey()
	}
	return v
}
