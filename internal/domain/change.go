package domain

import "time"

// ChangeAction is the kind of mutation applied to a resource
type ChangeAction string

const (
	ChangeCreated ChangeAction = "created"
	ChangeUpdated ChangeAction = "updated"
	ChangeDeleted ChangeAction = "deleted"
)

// ChangeEvent is published after a successful resource mutation
type ChangeEvent struct {
	Kind       string       `json:"kind"`
	Action     ChangeAction `json:"action"`
	ResourceID string       `json:"resourceId"`
	Fields     []string     `json:"fields,omitempty"`
	At         time.Time    `json:"at"`
}
