package mail

import (
	"context"

	"github.com/rs/zerolog"

	"guestpass/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*NoopNotifier)(nil)

// NoopNotifier logs instead of sending. Used in dev mode and when SMTP is
// not configured.
type NoopNotifier struct {
	log *zerolog.Logger
}

func NewNoopNotifier(logger *zerolog.Logger) *NoopNotifier {
	return &NoopNotifier{log: logger}
}

func (n *NoopNotifier) SendAdmission(ctx context.Context, recipient, displayName string, codePNG []byte, fallbackURL string) error {
	n.log.Info().
		Str("recipient", recipient).
		Str("fallback_url", fallbackURL).
		Int("png_bytes", len(codePNG)).
		Msg("noop notifier: admission email suppressed")
	return nil
}
