package domain

import "context"

// Entry is a recorded action, before persistence fills identity fields.
type Entry struct {
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
}

type Service interface {
	// Record writes an audit entry. Failures are logged, never returned,
	// so audit writes cannot break the action they describe.
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, filter ListFilter) ([]*AuditLog, error)
}
