package loantracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"
)

// queryLanguage is JSONPath with the full gval expression language in filters, so that
// filters can compare values.
var queryLanguage = gval.Full(jsonpath.PlaceholderExtension())

// Query evaluates a JSONPath expression on the JSON form of s, as written by EncodeSnapshot.
//
// Amounts are JSON numbers, so they can be compared in filters, e.g.
// "$.borrowers[?(@.currentAmount > 100)].name".
func Query(s Snapshot, expr string) (any, error) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, s); err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(buf.Bytes(), &jobj); err != nil {
		return nil, fmt.Errorf("could not decode snapshot: %w", err)
	}
	eval, err := queryLanguage.NewEvaluable(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}
	jval, err := eval(context.Background(), jobj)
	if err != nil {
		return nil, fmt.Errorf("could not evaluate query %q: %w", expr, err)
	}
	return jval, nil
}
