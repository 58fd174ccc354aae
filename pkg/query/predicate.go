// Package query turns optional list filters into a single WHERE predicate.
//
// A list endpoint builds one Predicate and applies it, through Scope, to both
// the page query and the count query, so the two always see the same rows.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// All is the filter value meaning "no filter".
const All = "all"

// Predicate is a rendered WHERE condition. The zero value matches every row
// and adds no WHERE clause at all.
type Predicate struct {
	sql  string
	args []interface{}
}

func (p Predicate) IsEmpty() bool { return p.sql == "" }

func (p Predicate) SQL() string { return p.sql }

func (p Predicate) Args() []interface{} {
	out := make([]interface{}, len(p.args))
	copy(out, p.args)
	return out
}

// Scope is a gorm scope applying the predicate.
func (p Predicate) Scope(db *gorm.DB) *gorm.DB {
	if p.IsEmpty() {
		return db
	}
	return db.Where(p.sql, p.Args()...)
}

// Compose ANDs the present criteria. Nil criteria are absent and contribute
// nothing; a single criterion is rendered without an extra wrapping.
func Compose(criteria ...squirrel.Sqlizer) (Predicate, error) {
	present := make(squirrel.And, 0, len(criteria))
	for _, c := range criteria {
		if c != nil {
			present = append(present, c)
		}
	}

	var root squirrel.Sqlizer
	switch len(present) {
	case 0:
		return Predicate{}, nil
	case 1:
		root = present[0]
	default:
		root = present
	}

	sql, args, err := root.ToSql()
	if err != nil {
		return Predicate{}, fmt.Errorf("build predicate: %w", err)
	}
	return Predicate{sql: sql, args: args}, nil
}

// Search matches term as a case-insensitive substring of any of columns.
// A blank term is absent.
func Search(term string, columns ...string) squirrel.Sqlizer {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return nil
	}

	pattern := "%" + escapeLike(term) + "%"
	or := make(squirrel.Or, 0, len(columns))
	for _, column := range columns {
		or = append(or, squirrel.ILike{column: pattern})
	}
	return or
}

// Equal is column = value, absent when value is empty or All.
func Equal(column, value string) squirrel.Sqlizer {
	value = strings.TrimSpace(value)
	if value == "" || value == All {
		return nil
	}
	return squirrel.Eq{column: value}
}

// BoolEqual is column = *value, absent when value is nil.
func BoolEqual(column string, value *bool) squirrel.Sqlizer {
	if value == nil {
		return nil
	}
	return squirrel.Eq{column: *value}
}

// ParseBoolFilter reads an all|true|false filter. trueLabel and falseLabel are
// extra spellings accepted by some call sites (e.g. "contattato").
// Empty and All return nil.
func ParseBoolFilter(value, trueLabel, falseLabel string) (*bool, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	switch {
	case value == "" || value == All:
		return nil, nil
	case trueLabel != "" && value == trueLabel:
		v := true
		return &v, nil
	case falseLabel != "" && value == falseLabel:
		v := false
		return &v, nil
	}

	v, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean filter %q", value)
	}
	return &v, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
