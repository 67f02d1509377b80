package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/anirbansen/framap/internal/api"
	"github.com/anirbansen/framap/internal/cache"
	"github.com/anirbansen/framap/internal/model"
)

// API is the slice of the network client the fetcher uses.
type API interface {
	Claims(ctx context.Context) ([]model.ClaimRecord, error)
	Assets(ctx context.Context) ([]model.AssetRecord, error)
}

// Sessions supplies the bearer token of the current session. The token
// scopes cache entries, so a restarted process keeps serving its own
// session's cached data and never another session's.
type Sessions interface {
	Token() string
}

// Service fetches the map dataset: claims and assets, pulled concurrently,
// with transient failures retried and responses cached per session.
// Authorization rejections are never retried; by the time the fetcher
// sees one the session has already been invalidated.
type Service struct {
	client     API
	sessions   Sessions
	cache      cache.Cache // nil disables caching
	baseURL    string
	maxRetries int
	log        zerolog.Logger
}

// New creates a fetch service. Pass a nil cache to always hit the network.
func New(client API, sessions Sessions, c cache.Cache, baseURL string, maxRetries int, log zerolog.Logger) *Service {
	return &Service{
		client:     client,
		sessions:   sessions,
		cache:      c,
		baseURL:    baseURL,
		maxRetries: maxRetries,
		log:        log,
	}
}

// Dataset is one consistent pull of the map data.
type Dataset struct {
	Claims []model.ClaimRecord `json:"claims"`
	Assets []model.AssetRecord `json:"assets"`
}

// Dataset fetches claims and assets concurrently. Either side failing fails
// the whole pull; per-record problems were already absorbed at the API
// boundary and inside the geometry layer.
func (s *Service) Dataset(ctx context.Context) (*Dataset, error) {
	var (
		ds       Dataset
		wg       sync.WaitGroup
		claimErr error
		assetErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		claimErr = fetchEndpoint(ctx, s, "/claims", &ds.Claims, s.client.Claims)
	}()
	go func() {
		defer wg.Done()
		assetErr = fetchEndpoint(ctx, s, "/assets", &ds.Assets, s.client.Assets)
	}()
	wg.Wait()

	if claimErr != nil {
		return nil, claimErr
	}
	if assetErr != nil {
		return nil, assetErr
	}
	return &ds, nil
}

// fetchEndpoint resolves one endpoint through cache, retry and network.
func fetchEndpoint[T any](ctx context.Context, s *Service, endpoint string, out *[]T, call func(context.Context) ([]T, error)) error {
	scope := s.sessions.Token()
	resource := s.baseURL + endpoint

	if s.cache != nil {
		if data, found := s.cache.Get(scope, resource); found {
			if err := json.Unmarshal(data, out); err == nil {
				s.log.Debug().Str("endpoint", endpoint).Msg("cache hit")
				return nil
			}
			// Unreadable entry: fall through to the network.
			_ = s.cache.Delete(scope, resource)
		}
	}

	records, err := retrying(ctx, s, endpoint, call)
	if err != nil {
		return err
	}
	*out = records

	if s.cache != nil {
		if data, err := json.Marshal(records); err == nil {
			if err := s.cache.Set(scope, resource, data); err != nil {
				s.log.Debug().Err(err).Str("endpoint", endpoint).Msg("cache write failed")
			}
		}
	}
	return nil
}

// retrying retries transient network failures with capped exponential
// backoff. Auth rejections and server-side errors are permanent.
func retrying[T any](ctx context.Context, s *Service, endpoint string, call func(context.Context) ([]T, error)) ([]T, error) {
	var records []T

	operation := func() error {
		var err error
		records, err = call(ctx)
		if err == nil {
			return nil
		}

		var netErr *api.NetworkError
		if errors.As(err, &netErr) {
			s.log.Warn().Err(err).Str("endpoint", endpoint).Msg("transient fetch failure, retrying")
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.maxRetries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return records, nil
}
