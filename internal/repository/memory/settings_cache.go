package memory

import (
	"time"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SettingsCache keeps per-user AI settings in memory so the agent pipeline
// does not hit the database on every message. Entries expire after five
// minutes; a settings save invalidates eagerly.
type SettingsCache struct {
	cache *cache.Cache
}

func NewSettingsCache() *SettingsCache {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &SettingsCache{
		cache: c,
	}
}

func (r *SettingsCache) Save(settings *entity.UserSettings) {
	r.cache.Set(settings.UserId.String(), settings, cache.DefaultExpiration)
}

func (r *SettingsCache) Get(userId uuid.UUID) (*entity.UserSettings, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(*entity.UserSettings), true
	}
	return nil, false
}

func (r *SettingsCache) Invalidate(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
