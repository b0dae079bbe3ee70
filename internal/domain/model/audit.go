package model

import "time"

// AuditAction names a destructive operation recorded in the audit trail.
type AuditAction string

const (
	AuditDropletDelete AuditAction = "droplet.delete"
	AuditDropletKeep   AuditAction = "droplet.keep"
	AuditProjectDelete AuditAction = "project.delete"
	AuditProjectKeep   AuditAction = "project.keep"
)

// AuditEntry records one decision made by a prune run.
type AuditEntry struct {
	ID         int64
	RunID      string
	Action     AuditAction
	TargetID   string
	TargetName string
	DryRun     bool
	Error      string // Empty on success.
	CreatedAt  time.Time
}
