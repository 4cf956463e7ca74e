package notify

import (
	"context"
	"time"
)

type Kind string

const (
	KindFollow  Kind = "follow"
	KindLike    Kind = "like"
	KindComment Kind = "comment"
	KindMatch   Kind = "match"
)

type Payload struct {
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	SentAt  time.Time      `json:"sentAt"`
}

// Notifier es fire-and-forget: sin garantía de entrega y sin error para el caller.
// Si el usuario no tiene canal activo, no hace nada.
type Notifier interface {
	Notify(ctx context.Context, userID int64, p Payload)
}

// Nop descarta todo.
type Nop struct{}

func (Nop) Notify(context.Context, int64, Payload) {}
