package row

// Record maps canonical column names to typed values. Records produced
// by filtering or projection are always freshly allocated; operators
// never mutate a record they received.
type Record map[string]Value

// Get returns the value under the given column, or Null when the key
// is missing or holds a nil interface. Callers never see the
// difference between an absent key and a stored Null.
func (r Record) Get(name string) Value {
	v, ok := r[name]
	if !ok || v == nil {
		return Null{}
	}
	return v
}

// Catalog maps canonical table names to their ordered row sequences.
// The executor only reads a catalog; ingestion owns its construction.
type Catalog map[string][]Record
