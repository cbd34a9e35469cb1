package model

import "strings"

// Status is the workflow state of an entry.
type Status string

const (
	StatusPending        Status = "pending"
	StatusApproved       Status = "approved"
	StatusHidden         Status = "hidden"
	StatusUpdateRequired Status = "update_required"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusApproved, StatusHidden, StatusUpdateRequired}

// statusLabels are the labels staff see in spreadsheets.
var statusLabels = map[Status]string{
	StatusPending:        "Chờ duyệt",
	StatusApproved:       "Đã duyệt",
	StatusHidden:         "Tạm ẩn",
	StatusUpdateRequired: "Cần cập nhật",
}

// Label returns the staff-facing label, or the raw value for unknown statuses.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts a status name in any case ("Approved", "update-required",
// "UpdateRequired") or its staff-facing label.
func ParseStatus(raw string) (Status, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	norm := strings.ToLower(raw)
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	if norm == "updaterequired" {
		norm = string(StatusUpdateRequired)
	}
	if s := Status(norm); s.Valid() {
		return s, true
	}
	for s, l := range statusLabels {
		if strings.EqualFold(l, raw) {
			return s, true
		}
	}
	return "", false
}
