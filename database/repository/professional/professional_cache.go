package professionalRepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"homepro/models"
	"homepro/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const profileCachePrefix = "professional:"

// cachedProfile keeps the FCM token, which the public JSON form hides.
type cachedProfile struct {
	models.Professional
	FCMToken string `json:"fcmToken,omitempty"`
}

// CachedProfessionalRepo adds a Redis cache-aside in front of GetByID.
// Every write goes to the wrapped repository first and then evicts the entry.
type CachedProfessionalRepo struct {
	ProfessionalRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedProfessionalRepo wraps inner. A non-positive ttl disables caching.
func NewCachedProfessionalRepo(inner ProfessionalRepository, cache *redis.Client, ttl time.Duration) *CachedProfessionalRepo {
	return &CachedProfessionalRepo{ProfessionalRepository: inner, cache: cache, ttl: ttl}
}

func (r *CachedProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	if r.ttl <= 0 || r.cache == nil {
		return r.ProfessionalRepository.GetByID(ctx, id)
	}
	logger := utils.GetLogger()
	key := profileCachePrefix + id

	raw, err := r.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry cachedProfile
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil {
			pro := entry.Professional
			pro.FCMToken = entry.FCMToken
			return &pro, nil
		}
		logger.Warn("Discarding unreadable cached profile", zap.String("professionalID", id))
	case !errors.Is(err, redis.Nil):
		logger.Error("Profile cache read failed", zap.String("professionalID", id), zap.Error(err))
	}

	pro, err := r.ProfessionalRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, jsonErr := json.Marshal(cachedProfile{Professional: *pro, FCMToken: pro.FCMToken}); jsonErr == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			logger.Error("Profile cache write failed", zap.String("professionalID", id), zap.Error(setErr))
		}
	}
	return pro, nil
}

func (r *CachedProfessionalRepo) Create(ctx context.Context, pro *models.Professional) error {
	if err := r.ProfessionalRepository.Create(ctx, pro); err != nil {
		return err
	}
	r.evict(ctx, pro.ID)
	return nil
}

func (r *CachedProfessionalRepo) Update(ctx context.Context, id string, patch Patch) (*models.Professional, error) {
	pro, err := r.ProfessionalRepository.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, id)
	return pro, nil
}

func (r *CachedProfessionalRepo) evict(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Del(ctx, profileCachePrefix+id).Err(); err != nil {
		utils.GetLogger().Error("Profile cache eviction failed", zap.String("professionalID", id), zap.Error(err))
	}
}
