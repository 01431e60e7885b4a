package services

// upsertByID is the reconciliation step applied after every successful
// write: insert the returned record at the head when its id is new, or
// replace the match in place. Existing order and entries are never
// disturbed, and the input slice is left untouched.
func upsertByID[T any](list []T, item T, id func(T) string) []T {
	key := id(item)
	for i := range list {
		if id(list[i]) == key {
			out := make([]T, len(list))
			copy(out, list)
			out[i] = item
			return out
		}
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

// removeByID drops the record with the given id, preserving order.
func removeByID[T any](list []T, key string, id func(T) string) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if id(item) != key {
			out = append(out, item)
		}
	}
	return out
}
