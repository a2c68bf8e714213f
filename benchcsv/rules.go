// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// A Rule coerces the fields of the column named Column with Parser.
type Rule struct {
	Column string
	Parser Parser
}

// Rules is an ordered coercion table. The first rule naming a column
// wins; columns named by no rule are kept as raw text.
type Rules []Rule

// DefaultRules is the coercion table for the cuckoo hash table
// benchmark results.
var DefaultRules = Rules{
	{"Threads", Int},
	{"libcuckoo", Float},
	{"tbb", Float},
	{"Hashpower", PowerOfTwo},
	{"Insert Percentage", Int},
}

// Lookup returns the parser for column name, or Text if no rule names
// it.
func (rs Rules) Lookup(name string) Parser {
	for _, r := range rs {
		if r.Column == name {
			return r.Parser
		}
	}
	return Text
}

// A Parser converts the raw fields of one column into a typed column.
type Parser interface {
	newColumn() column
}

// column accumulates the values of one table column.
type column interface {
	add(field string) error
	slice() table.Slice
}

// A ParseFunc is a Parser producing a column of T.
type ParseFunc[T any] func(field string) (T, error)

func (f ParseFunc[T]) newColumn() column {
	return &typedColumn[T]{parse: f, vals: []T{}}
}

type typedColumn[T any] struct {
	parse ParseFunc[T]
	vals  []T
}

func (c *typedColumn[T]) add(field string) error {
	v, err := c.parse(field)
	if err != nil {
		return err
	}
	c.vals = append(c.vals, v)
	return nil
}

func (c *typedColumn[T]) slice() table.Slice {
	return c.vals
}

var (
	// Text keeps fields unchanged.
	Text = ParseFunc[string](func(field string) (string, error) {
		return field, nil
	})

	// Int parses base 10 integers.
	Int = ParseFunc[int](parseInt)

	// Float parses floating-point numbers.
	Float = ParseFunc[float64](func(field string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(field), 64)
	})

	// PowerOfTwo parses an integer exponent n and yields 2**n.
	PowerOfTwo = ParseFunc[int](func(field string) (int, error) {
		n, err := parseInt(field)
		if err != nil {
			return 0, err
		}
		if n < 0 || n >= strconv.IntSize-1 {
			return 0, fmt.Errorf("exponent %d out of range [0, %d)", n, strconv.IntSize-1)
		}
		return 1 << n, nil
	})
)

func parseInt(field string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 0)
	return int(v), err
}
