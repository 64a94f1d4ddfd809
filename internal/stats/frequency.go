package stats

import "sort"

// Counted pairs a record with the number of times its key has been seen.
type Counted[V any] struct {
	Value V
	N     int
}

// FrequencyTable counts occurrences of records under a derived string key.
// There is no bound on the number of distinct keys; counters only grow until
// the table is replaced on reset.
//
// A FrequencyTable is not safe for concurrent use; the Store serializes
// access.
type FrequencyTable[V any] struct {
	records map[string]*Counted[V]
}

// NewFrequencyTable creates an empty table.
func NewFrequencyTable[V any]() *FrequencyTable[V] {
	return &FrequencyTable[V]{records: make(map[string]*Counted[V])}
}

// Increment bumps the counter for key, creating the record via factory the
// first time the key is seen.
func (t *FrequencyTable[V]) Increment(key string, factory func() V) {
	rec, ok := t.records[key]
	if !ok {
		rec = &Counted[V]{Value: factory()}
		t.records[key] = rec
	}
	rec.N++
}

// TopN returns the n records with the highest counts in descending order.
// Ties carry no order guarantee. The returned records are copies; TopN never
// mutates the table.
func (t *FrequencyTable[V]) TopN(n int) []Counted[V] {
	out := make([]Counted[V], 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].N > out[j].N })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Len returns the number of distinct keys.
func (t *FrequencyTable[V]) Len() int {
	return len(t.records)
}
