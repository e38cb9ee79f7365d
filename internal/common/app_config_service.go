package common

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/db/repositories"
)

///////////////////////////////////////////////////////////////////////////////
// Public “enum” — just string constants
///////////////////////////////////////////////////////////////////////////////

const (
	ConfigKeyChatDisplayLimit  = "chat_display_limit"
	ConfigKeyChatChunkLimit    = "chat_chunk_limit"
	ConfigKeyBroadFreighter    = "broad_freighter_heuristic"
	ConfigKeyGeoSyncMaxAgeDays = "geography_sync_max_age_days"
	ConfigKeyContinuationTTL   = "continuation_ttl_minutes"
)

var AllowedAppConfigKeys = []string{
	ConfigKeyChatDisplayLimit,
	ConfigKeyChatChunkLimit,
	ConfigKeyBroadFreighter,
	ConfigKeyGeoSyncMaxAgeDays,
	ConfigKeyContinuationTTL,
}

// String slice ready for JSON response
func ListAllowedAppConfigKeys() []string { return AllowedAppConfigKeys }

// O(n) validator (fine for small list)
func IsValidAppConfigKey(k string) bool {
	for _, allowed := range AllowedAppConfigKeys {
		if allowed == k {
			return true
		}
	}
	return false
}

///////////////////////////////////////////////////////////////////////////////
// Service
///////////////////////////////////////////////////////////////////////////////

type AppConfigService struct {
	repo  *repositories.ConfigRepository
	cache CacheInterface
}

func NewAppConfigService(r *repositories.ConfigRepository, c CacheInterface) *AppConfigService {
	return &AppConfigService{repo: r, cache: c}
}

// Expose constants to API callers
func (s *AppConfigService) ListPossibleKeys() []string { return ListAllowedAppConfigKeys() }

// ---------------------------------------------------------------------------
// Set a config value and return the updated map
// ---------------------------------------------------------------------------
func (s *AppConfigService) SetConfig(
	ctx context.Context,
	key string,
	value string,
) (map[string]string, error) {

	if !IsValidAppConfigKey(key) {
		return nil, fmt.Errorf("%q is not a valid key", key)
	}

	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return nil, fmt.Errorf("failed to set config: %w", err)
	}

	s.cache.Delete(string(constants.CachePrefixAppConfig))

	return s.GetAllConfigValues(ctx)
}

// ---------------------------------------------------------------------------
// Get *all* values (cached)             map[string]string
// ---------------------------------------------------------------------------
func (s *AppConfigService) GetAllConfigValues(ctx context.Context) (map[string]string, error) {

	ttl := 10 * time.Minute
	cacheKey := string(constants.CachePrefixAppConfig)

	val, err := s.cache.GetOrSet(cacheKey, ttl, func() (any, error) {
		rows, err := s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[string]string, len(rows))
		for _, r := range rows {
			m[r.ConfigKey] = r.ConfigValue
		}

		return m, nil
	})
	if err != nil {
		return nil, err
	}

	// The Redis backend round-trips through JSON, so the map comes back
	// as map[string]interface{}.
	switch cfgs := val.(type) {
	case map[string]string:
		return cfgs, nil
	case map[string]interface{}:
		m := make(map[string]string, len(cfgs))
		for k, v := range cfgs {
			if str, ok := v.(string); ok {
				m[k] = str
			}
		}
		return m, nil
	}

	return nil, errors.New("cache type assertion to map[string]string failed")
}

// ---------------------------------------------------------------------------
// Get single value
// ---------------------------------------------------------------------------
func (s *AppConfigService) GetConfigVal(
	ctx context.Context,
	key string, // callers import ConfigKeyChatDisplayLimit etc.
) (string, error) {

	if !IsValidAppConfigKey(key) {
		return "", fmt.Errorf("%q is not a valid key", key)
	}

	cfgs, err := s.GetAllConfigValues(ctx)
	if err != nil {
		return "", err
	}
	return cfgs[key], nil
}

// GetIntVal reads a numeric config value, falling back when unset or
// unparsable
func (s *AppConfigService) GetIntVal(ctx context.Context, key string, fallback int) int {
	val, err := s.GetConfigVal(ctx, key)
	if err != nil || val == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

// GetBoolVal reads a boolean config value, falling back when unset or
// unparsable
func (s *AppConfigService) GetBoolVal(ctx context.Context, key string, fallback bool) bool {
	val, err := s.GetConfigVal(ctx, key)
	if err != nil || val == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
