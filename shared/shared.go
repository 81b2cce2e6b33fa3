package shared

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Jaxki97/lussoautostudio/shared/cache"
	"github.com/Jaxki97/lussoautostudio/shared/dto"

	"github.com/rs/zerolog/log"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// BuildCacheKey joins the given parts into a colon-separated cache key.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a cache key from a prefix plus pagination and
// filter parameters, so differently-filtered reads never share an entry.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, extras ...string) string {
	key := fmt.Sprintf("%s:%d:%d:%s:%s", prefix, params.Page, params.Limit, params.SortBy, params.SortDir)

	if len(extras) > 0 {
		key = key + ":" + strings.Join(extras, ":")
	}

	return key
}

// InvalidateCaches clears every cache entry under the given prefix. Failures
// are logged only; a stale cache is repaired on the next expiry.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
	}
}
