// Package lognotify registra las notificaciones en el log. Se usa sin Redis.
package lognotify

import (
	"context"

	"go.uber.org/zap"

	"pet-social/internal/ports/notify"
)

type Notifier struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{log: log}
}

func (n *Notifier) Notify(_ context.Context, userID int64, p notify.Payload) {
	n.log.Info("notification",
		zap.Int64("user_id", userID),
		zap.String("kind", string(p.Kind)),
		zap.String("message", p.Message),
	)
}
