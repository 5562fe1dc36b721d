package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"textgraph/domain/core/valueobjects"
)

// Record extraction helpers. The driver returns property values as int64 /
// string / bool / nil inside records and nested maps; these normalize them.

func stringVal(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func intVal(rec *neo4j.Record, key string) int {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	return asInt(v)
}

func boolVal(rec *neo4j.Record, key string) bool {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func asString(v interface{}) string {
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// spansVal reads a collect({start, end}) column into ordered spans
func spansVal(rec *neo4j.Record, key string) []valueobjects.Span {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	spans := make([]valueobjects.Span, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		spans = append(spans, valueobjects.Span{
			Start: asInt(m["start"]),
			End:   asInt(m["end"]),
		})
	}
	return spans
}

// textsVal reads a collect({tag, text}) column into a tag→text map
func textsVal(rec *neo4j.Record, key string) map[string]string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	texts := make(map[string]string, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		texts[asString(m["tag"])] = asString(m["text"])
	}
	return texts
}

// stringsVal reads a collect(x) string column
func stringsVal(rec *neo4j.Record, key string) []string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		out = append(out, asString(item))
	}
	return out
}

// runCollect runs a query and collects all records
func runCollect(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]interface{}) ([]*neo4j.Record, error) {
	result, err := tx.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return result.Collect(ctx)
}

// runSingle runs a query expecting exactly one record
func runSingle(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]interface{}) (*neo4j.Record, error) {
	result, err := tx.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return result.Single(ctx)
}

// runCount runs a query returning a single count column named n
func runCount(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]interface{}) (int, error) {
	rec, err := runSingle(ctx, tx, query, params)
	if err != nil {
		return 0, err
	}
	return intVal(rec, "n"), nil
}

// runWrite runs a statement and consumes its result
func runWrite(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]interface{}) error {
	result, err := tx.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}
