package memory

import (
	"time"

	"vetcare-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// AvailabilityCache keeps short-lived per-vet snapshots of approved
// appointments. The availability check is advisory, so a slightly stale
// snapshot is acceptable; transitions that change a vet's schedule
// invalidate the vet's entry.
type AvailabilityCache struct {
	cache *cache.Cache
}

func NewAvailabilityCache() *AvailabilityCache {
	c := cache.New(30*time.Second, 5*time.Minute)
	return &AvailabilityCache{
		cache: c,
	}
}

func (r *AvailabilityCache) Get(vetId uuid.UUID) ([]*entity.AppointmentRequest, bool) {
	if x, found := r.cache.Get(vetId.String()); found {
		return x.([]*entity.AppointmentRequest), true
	}
	return nil, false
}

func (r *AvailabilityCache) Set(vetId uuid.UUID, requests []*entity.AppointmentRequest) {
	r.cache.Set(vetId.String(), requests, cache.DefaultExpiration)
}

func (r *AvailabilityCache) Invalidate(vetId uuid.UUID) {
	r.cache.Delete(vetId.String())
}
