// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package registry

import (
	"github.com/ned0000/servmgmtd/internal/servmgmterr"
)

// Table is the Service Table: a bounded, ordered collection of service
// records, one per declared service, looked up by name. A Table does not
// synchronize its own access: see the package doc comment.
type Table struct {
	records []*Record
	byName  map[string]int
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{byName: make(map[string]int)}
}

// Add appends rec to the table. It rejects a duplicate name and rejects
// exceeding MaxServices, both as InvalidSetting.
func (t *Table) Add(rec *Record) error {
	if _, exists := t.byName[rec.Name]; exists {
		return servmgmterr.NewForService(servmgmterr.InvalidSetting, rec.Name, "duplicate service name")
	}
	if len(t.records) >= MaxServices {
		return servmgmterr.New(servmgmterr.InvalidSetting, "service table is full")
	}
	t.byName[rec.Name] = len(t.records)
	t.records = append(t.records, rec)
	return nil
}

// Get looks up a record by exact, case-sensitive name.
func (t *Table) Get(name string) (*Record, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.records[idx], true
}

// List returns every record in declaration order. The returned slice must
// not be mutated by the caller.
func (t *Table) List() []*Record {
	return t.records
}

// Len returns the number of registered services.
func (t *Table) Len() int {
	return len(t.records)
}
