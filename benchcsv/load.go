// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv loads CSV benchmark results into column-oriented
// tables.
//
// The first row of the input names the columns. Every following row
// is one data point and must have exactly one field per column. Each
// column is converted according to a coercion table keyed by column
// name (see Rules); columns the table does not mention are kept as
// strings.
package benchcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-gg/table"
)

// ErrNoHeader is returned for an input without a header row.
var ErrNoHeader = errors.New("missing header row")

// A MalformedRowError reports a data row whose field count differs
// from the header's.
type MalformedRowError struct {
	FileName string
	Line     int
	Fields   int // fields in the row
	Want     int // fields in the header
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s:%d: row has %d fields, header has %d", e.FileName, e.Line, e.Fields, e.Want)
}

// A ParseError reports a field that its column's Parser rejected.
type ParseError struct {
	FileName string
	Line     int
	Column   string
	Field    string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: column %q: cannot parse %q: %v", e.FileName, e.Line, e.Column, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// A DuplicateColumnError reports a header that names a column twice.
type DuplicateColumnError struct {
	FileName string
	Column   string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("%s:1: duplicate column %q", e.FileName, e.Column)
}

// A Loader reads CSV files into tables.
//
// The zero value uses DefaultRules and a comma separator.
type Loader struct {
	// Rules is the coercion table. If nil, DefaultRules is used.
	Rules Rules

	// Comma is the field separator. If zero, ',' is used.
	Comma rune
}

// Load reads the CSV file at path using DefaultRules.
func Load(path string) (*table.Table, error) {
	return new(Loader).Load(path)
}

// Load reads the CSV file at path.
func (l *Loader) Load(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.Read(f, path)
}

// Read reads CSV data from r. fileName is used in error messages; it
// is purely diagnostic.
//
// On any error, Read returns a nil table.
func (l *Loader) Read(r io.Reader, fileName string) (*table.Table, error) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	rules := l.Rules
	if rules == nil {
		rules = DefaultRules
	}

	cr := csv.NewReader(r)
	if l.Comma != 0 {
		cr.Comma = l.Comma
	}
	// Field counts are checked below so the error can say which row.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", fileName, ErrNoHeader)
	} else if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return nil, &DuplicateColumnError{fileName, name}
		}
		seen[name] = true
	}

	cols := make([]column, len(header))
	for i, name := range header {
		cols[i] = rules.Lookup(name).newColumn()
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != len(header) {
			return nil, &MalformedRowError{fileName, line, len(rec), len(header)}
		}
		for i, field := range rec {
			if err := cols[i].add(field); err != nil {
				return nil, &ParseError{fileName, line, header[i], field, err}
			}
		}
	}

	var b table.Builder
	for i, name := range header {
		b.Add(name, cols[i].slice())
	}
	return b.Done(), nil
}
