package specialdays

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DefaultHolidaysURL = "https://holidays-jp.github.io/api/v1/date.json"

const cacheExpiration = 24 * time.Hour

// RemoteLoader fetches the holiday mapping over HTTP, optionally caching the raw body in redis
type RemoteLoader struct {
	URL         string
	HTTPClient  *http.Client
	MaxAttempts uint64
	MaxElapsed  time.Duration

	Cache *cache.Cache[string]
}

func NewRemoteLoader(url string) *RemoteLoader {
	if url == "" {
		url = DefaultHolidaysURL
	}

	return &RemoteLoader{
		URL:         url,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
		MaxAttempts: 3,
		MaxElapsed:  10 * time.Second,
	}
}

func (r *RemoteLoader) WithRedisCache(client *redis.Client) *RemoteLoader {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(cacheExpiration))
	r.Cache = cache.New[string](redisStore)

	return r
}

func (r *RemoteLoader) Load(ctx context.Context) (*Calendar, error) {
	cacheKey := r.cacheKey()

	if r.Cache != nil {
		body, err := r.Cache.Get(ctx, cacheKey)
		if err == nil {
			calendar, err := Parse([]byte(body))
			if err == nil {
				log.Debug().Str("url", r.URL).Msg("Loaded holidays from cache")
				return calendar, nil
			}
		}
	}

	body, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	calendar, err := Parse(body)
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		if err := r.Cache.Set(ctx, cacheKey, string(body)); err != nil {
			log.Error().Err(err).Msg("Failed to cache holidays")
		}
	}

	log.Info().Str("url", r.URL).Int("years", calendar.Years()).Int("holidays", calendar.Len()).Msg("Loaded holidays")

	return calendar, nil
}

func (r *RemoteLoader) cacheKey() string {
	return fmt.Sprintf("subwayboard/holidays/%s", r.URL)
}

func (r *RemoteLoader) fetch(ctx context.Context) ([]byte, error) {
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = r.MaxElapsed

	attempts := r.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}

	var body []byte
	operation := func() error {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		client := r.HTTPClient
		if client == nil {
			client = http.DefaultClient
		}

		response, err := client.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		if response.StatusCode >= 500 {
			return fmt.Errorf("holidays request returned %s", response.Status)
		}
		if response.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("holidays request returned %s", response.Status))
		}

		body, err = io.ReadAll(response.Body)
		return err
	}

	notify := func(err error, wait time.Duration) {
		log.Debug().Err(err).Dur("wait", wait).Msg("Retrying holidays request")
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(retryBackoff, attempts-1), ctx), notify)
	if err != nil {
		return nil, fmt.Errorf("fetching holidays: %w", err)
	}

	return body, nil
}
