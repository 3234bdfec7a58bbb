// Package postcode implements the service-area table the eligibility
// validator consults: per-postcode acceptance status and an optional loan
// cap. The table is a boundary collaborator; the core only ever performs a
// keyed lookup against it.
package postcode

import (
	"encoding/json"
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
)

// Status classifies a postcode within the service area.
type Status string

const (
	// StatusAccept lends normally.
	StatusAccept Status = "accept"
	// StatusRefer lends but flags the application for manual review.
	StatusRefer Status = "refer"
	// StatusReject is outside the service area.
	StatusReject Status = "reject"
)

// Entry is one row of the table. A zero Cap means no postcode-specific cap.
type Entry struct {
	Status Status  `json:"status"`
	Cap    float64 `json:"cap,omitempty"`
}

// Table is a keyed lookup of postcode entries.
type Table interface {
	Lookup(postcode string) (Entry, bool)
}

// StaticTable is an in-memory Table, used by tests and the CLI tools.
type StaticTable map[string]Entry

func (t StaticTable) Lookup(postcode string) (Entry, bool) {
	e, ok := t[postcode]
	return e, ok
}

// LoadFile reads a table from an HJSON document. The service-area file is
// hand-maintained by operations, so the lenient syntax (comments, trailing
// commas, unquoted keys) matters in practice. Document shape:
//
//	{
//	  "2000": { status: accept, cap: 550000 }
//	  "2999": { status: refer }
//	}
func LoadFile(path string) (StaticTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read postcode table: %w", err)
	}

	// HJSON decodes into a generic value; round-trip through JSON to get
	// the typed entries.
	var raw interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse postcode table: %w", err)
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize postcode table: %w", err)
	}

	table := StaticTable{}
	if err := json.Unmarshal(normalized, &table); err != nil {
		return nil, fmt.Errorf("decode postcode table: %w", err)
	}

	for code, e := range table {
		switch e.Status {
		case StatusAccept, StatusRefer, StatusReject:
		default:
			return nil, fmt.Errorf("postcode %s: unknown status %q", code, e.Status)
		}
	}
	return table, nil
}
