package model

import "strings"

// AddUnique appends the trimmed value to list unless it is blank or already present.
func AddUnique(list []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return list
	}
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

// Remove returns list without any occurrence of value.
func Remove(list []string, value string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

// Toggle removes value from list if present and appends it otherwise.
func Toggle(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return Remove(list, value)
		}
	}
	return append(list, value)
}

// SplitList splits a comma-joined cell into trimmed, non-empty tokens.
func SplitList(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinList is the inverse of SplitList for values without embedded commas.
func JoinList(list []string) string {
	return strings.Join(list, ", ")
}
