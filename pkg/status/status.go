// Package status maps blogger moderation statuses to display badges.
package status

import "strings"

// Badge is how a moderation status is shown.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Moderation statuses reported by the backend.
const (
	Draft      = "DRAFT"
	Moderation = "MODERATION"
	Published  = "PUBLISHED"
	Rejected   = "REJECTED"
	Blocked    = "BLOCKED"
)

var unknown = Badge{Label: "Неизвестно", Color: "gray"}

var badges = map[string]Badge{
	Draft:      {Label: "Черновик", Color: "gray"},
	Moderation: {Label: "На модерации", Color: "yellow"},
	Published:  {Label: "Опубликован", Color: "green"},
	Rejected:   {Label: "Отклонён", Color: "red"},
	Blocked:    {Label: "Заблокирован", Color: "red"},
}

// For returns the badge of status. Matching ignores case and surrounding
// space; unknown statuses get a gray "Неизвестно" badge.
func For(status string) Badge {
	if b, ok := badges[strings.ToUpper(strings.TrimSpace(status))]; ok {
		return b
	}
	return unknown
}

// Known reports whether status is one of the moderation statuses.
func Known(status string) bool {
	_, ok := badges[strings.ToUpper(strings.TrimSpace(status))]
	return ok
}

// Editable reports whether a blogger in status may submit new drafts.
func Editable(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case Draft, Published, Rejected:
		return true
	}
	return false
}
