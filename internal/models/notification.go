package models

import "time"

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     string    `json:"variant"`
	Timestamp   time.Time `json:"timestamp"`
}
