package adapter

import "context"

// Notifier delivers the approval message to a guest: a scannable code image
// plus a fallback link encoding the same admission token. Delivery failure is
// reported to the caller but must never undo an approval.
type Notifier interface {
	SendAdmission(ctx context.Context, recipient, displayName string, codePNG []byte, fallbackURL string) error
}
