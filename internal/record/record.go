package record

// Field is one extracted key/value pair. Order of fields on a record is the
// order extractors produced them.
type Field struct {
	Key   string
	Value string
}

// Record is one log line plus the structure derived from it. Original and
// Index never change after the record enters the store; fields and the mark
// may be updated afterwards by the consuming side.
type Record struct {
	Original string
	Index    int
	SourceID string

	fields []Field
	byKey  map[string]int

	// Mark is a display-only color tag, empty when unmarked.
	Mark string
}

// New builds a record for a raw line. The index is assigned by the store on
// append.
func New(line string) *Record {
	return &Record{Original: line, Index: -1}
}

// Get returns the value for key and whether the field exists.
func (r *Record) Get(key string) (string, bool) {
	if r.byKey == nil {
		return "", false
	}
	i, ok := r.byKey[key]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Set adds a field, or replaces the value of an existing one in place so the
// original extraction order is kept.
func (r *Record) Set(key, value string) {
	if r.byKey == nil {
		r.byKey = make(map[string]int)
	}
	if i, ok := r.byKey[key]; ok {
		r.fields[i].Value = value
		return
	}
	r.byKey[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// SetIfAbsent adds a field only when the key is not present yet. Reports
// whether the field was added.
func (r *Record) SetIfAbsent(key, value string) bool {
	if _, ok := r.Get(key); ok {
		return false
	}
	r.Set(key, value)
	return true
}

// Unset removes a field. Removing an absent key is a no-op.
func (r *Record) Unset(key string) {
	i, ok := r.byKey[key]
	if !ok {
		return
	}
	r.fields = append(r.fields[:i], r.fields[i+1:]...)
	delete(r.byKey, key)
	for j := i; j < len(r.fields); j++ {
		r.byKey[r.fields[j].Key] = j
	}
}

// Fields returns the fields in extraction order. The returned slice is shared;
// callers must not mutate it.
func (r *Record) Fields() []Field {
	return r.fields
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}
