package predictor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"premium-estimator/internal/common/logger"
	"premium-estimator/internal/common/metrics"
	"premium-estimator/internal/models"
)

// CachingPredictor memoizes premiums in Redis. The model is deterministic per
// feature mapping, so a hit is as good as a call. Redis failures never reach
// the caller; the request falls through to the wrapped predictor.
type CachingPredictor struct {
	next   Predictor
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
	logger logger.Logger
}

func NewCachingPredictor(next Predictor, rdb redis.Cmdable, ttl time.Duration, prefix string, log logger.Logger) *CachingPredictor {
	return &CachingPredictor{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
		logger: log.WithFields(map[string]interface{}{"component": "predictor-cache"}),
	}
}

func (c *CachingPredictor) Predict(ctx context.Context, profile models.ApplicantProfile) (float64, error) {
	key, err := c.key(profile)
	if err != nil {
		return c.next.Predict(ctx, profile)
	}

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if v, perr := strconv.ParseFloat(cached, 64); perr == nil {
			metrics.PredictorCacheLookups.WithLabelValues("hit").Inc()
			return v, nil
		}
		c.logger.Warn("discarding unparsable cache entry", map[string]interface{}{"key": key})
		metrics.PredictorCacheLookups.WithLabelValues("error").Inc()
	case stderrors.Is(err, redis.Nil):
		metrics.PredictorCacheLookups.WithLabelValues("miss").Inc()
	default:
		c.logger.Warn("cache read failed", map[string]interface{}{"error": err})
		metrics.PredictorCacheLookups.WithLabelValues("error").Inc()
	}

	premium, err := c.next.Predict(ctx, profile)
	if err != nil {
		// Failures are not cached.
		return 0, err
	}

	if err := c.rdb.Set(ctx, key, strconv.FormatFloat(premium, 'g', -1, 64), c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{"error": err})
	}
	return premium, nil
}

// key hashes the labelled features. encoding/json sorts map keys, so equal
// profiles always hash alike.
func (c *CachingPredictor) key(profile models.ApplicantProfile) (string, error) {
	payload, err := json.Marshal(profile.Features())
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return c.prefix + hex.EncodeToString(sum[:]), nil
}
