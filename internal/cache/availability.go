package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/glowupapps/salon-scheduler/internal/domain/schedule"
)

// AvailabilityCache guarda respostas de disponibilidade no Redis.
// Consultivo por definição: a chave carrega uma versão por data, e
// qualquer escrita de agendamento naquela data incrementa a versão,
// aposentando as entradas antigas. O guardião de conflito nunca lê
// daqui.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

func (c *AvailabilityCache) version(ctx context.Context, date string) int64 {
	v, err := c.rdb.Get(ctx, "slots:ver:"+date).Int64()
	if err != nil {
		return 0
	}
	return v
}

func (c *AvailabilityCache) key(serviceID, stylistID uint, date string, ver int64) string {
	return fmt.Sprintf("slots:%d:%d:%s:v%d", serviceID, stylistID, date, ver)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	serviceID, stylistID uint,
	date string,
) ([]schedule.TimeSlot, bool) {

	payload, err := c.rdb.Get(ctx, c.key(serviceID, stylistID, date, c.version(ctx, date))).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []schedule.TimeSlot
	if err := json.Unmarshal(payload, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	serviceID, stylistID uint,
	date string,
	slots []schedule.TimeSlot,
) {
	payload, err := json.Marshal(slots)
	if err != nil {
		return
	}
	// erro aqui é só cache perdido, nunca quebra o fluxo
	c.rdb.Set(ctx, c.key(serviceID, stylistID, date, c.version(ctx, date)), payload, c.ttl)
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, date string) {
	pipe := c.rdb.Pipeline()
	pipe.Incr(ctx, "slots:ver:"+date)
	pipe.Expire(ctx, "slots:ver:"+date, 48*time.Hour)
	pipe.Exec(ctx)
}
