package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events that must survive in the log trail
// even during shutdown.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
