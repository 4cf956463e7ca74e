// Package redisnotify publica notificaciones en canales Redis por usuario.
package redisnotify

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pet-social/internal/ports/notify"
)

const channelPrefix = "notifications:user:"

// Channel devuelve el canal de un usuario.
func Channel(userID int64) string {
	return channelPrefix + strconv.FormatInt(userID, 10)
}

type Notifier struct {
	rdb *redis.Client
	log *zap.Logger
	now func() time.Time
}

func New(rdb *redis.Client, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{rdb: rdb, log: log, now: time.Now}
}

// Dial abre un cliente y verifica la conexión.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// Notify nunca falla hacia el caller: sin suscriptores o con Redis caído solo se loguea.
func (n *Notifier) Notify(ctx context.Context, userID int64, p notify.Payload) {
	if p.SentAt.IsZero() {
		p.SentAt = n.now().UTC()
	}
	body, err := json.Marshal(p)
	if err != nil {
		n.log.Warn("notification encode failed", zap.Error(err))
		return
	}

	receivers, err := n.rdb.Publish(ctx, Channel(userID), body).Result()
	if err != nil {
		n.log.Warn("notification publish failed",
			zap.Int64("user_id", userID), zap.String("kind", string(p.Kind)), zap.Error(err))
		return
	}
	if receivers == 0 {
		n.log.Debug("notification dropped, user offline",
			zap.Int64("user_id", userID), zap.String("kind", string(p.Kind)))
	}
}
