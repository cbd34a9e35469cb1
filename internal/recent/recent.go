// Package recent tracks the most recently used entry ids.
package recent

// Limit is the maximum length of a recency list.
const Limit = 10

// Touch returns a new list with id at the front, any earlier occurrence
// removed, truncated to Limit. The input slice is not modified.
func Touch(ids []string, id string) []string {
	out := make([]string, 0, Limit)
	out = append(out, id)
	for _, rid := range ids {
		if len(out) == Limit {
			break
		}
		if rid != id {
			out = append(out, rid)
		}
	}
	return out
}

// Purge returns a new list with every occurrence of id removed.
func Purge(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, rid := range ids {
		if rid != id {
			out = append(out, rid)
		}
	}
	return out
}

// Contains reports whether id is in the list.
func Contains(ids []string, id string) bool {
	for _, rid := range ids {
		if rid == id {
			return true
		}
	}
	return false
}
