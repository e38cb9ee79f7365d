package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
)

// Continuation failure modes, mapped to API error codes by the handlers.
var (
	ErrTokenInvalid = errors.New("continuation token is invalid")
	ErrTokenExpired = errors.New("continuation token has expired")
	ErrTokenUsed    = errors.New("continuation token already redeemed")
)

// DefaultContinuationTTL bounds how long parked chunks stay redeemable.
const DefaultContinuationTTL = 15 * time.Minute

// maxChunksPerRedeem bounds how many chunks one redemption returns; the
// rest are re-parked under a fresh token.
const maxChunksPerRedeem = 5

// ContinuationService signs single-use continuation tokens and parks
// the chunks they redeem in the cache.
type ContinuationService struct {
	secretKey []byte
	cache     common.CacheInterface
	ttl       time.Duration
}

// NewContinuationService creates a continuation service with the given
// TTL; a non-positive TTL uses the default.
func NewContinuationService(secretKey []byte, cache common.CacheInterface, ttl time.Duration) *ContinuationService {
	if ttl <= 0 {
		ttl = DefaultContinuationTTL
	}
	return &ContinuationService{
		secretKey: secretKey,
		cache:     cache,
		ttl:       ttl,
	}
}

// Issue parks the chunks and returns a signed single-use token that
// redeems them.
func (s *ContinuationService) Issue(chunks []string) (string, error) {
	if len(chunks) == 0 {
		return "", errors.New("no chunks to park for continuation")
	}

	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(s.ttl)

	// Create JWT claims
	claims := jwt.MapClaims{
		"jti": tokenID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}

	// Sign with HMAC
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.cache.Set(parkKey(tokenID), chunks, s.ttl)

	return tokenString, nil
}

// Redeem validates a token, marks it used and returns the next batch of
// parked chunks. When more chunks remain they are re-parked under the
// returned follow-up token.
func (s *ContinuationService) Redeem(tokenString string) ([]string, int, string, error) {
	tokenID, err := s.validate(tokenString)
	if err != nil {
		return nil, 0, "", err
	}

	if s.isTokenUsed(tokenID) {
		return nil, 0, "", ErrTokenUsed
	}

	val, found := s.cache.Get(parkKey(tokenID))
	if !found {
		return nil, 0, "", ErrTokenExpired
	}

	chunks := toStringSlice(val)
	if len(chunks) == 0 {
		return nil, 0, "", ErrTokenExpired
	}

	s.markTokenUsed(tokenID)
	s.cache.Delete(parkKey(tokenID))

	batch := chunks
	var rest []string
	if len(chunks) > maxChunksPerRedeem {
		batch = chunks[:maxChunksPerRedeem]
		rest = chunks[maxChunksPerRedeem:]
	}

	next := ""
	if len(rest) > 0 {
		next, err = s.Issue(rest)
		if err != nil {
			return nil, 0, "", err
		}
	}

	return batch, len(rest), next, nil
}

func (s *ContinuationService) validate(tokenString string) (string, error) {
	// Parse and validate JWT
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return "", ErrTokenInvalid
	}

	return tokenID, nil
}

// isTokenUsed checks the single-use marker
func (s *ContinuationService) isTokenUsed(tokenID string) bool {
	_, found := s.cache.Get(usedKey(tokenID))
	return found
}

// markTokenUsed sets the single-use marker (kept as long as the token
// could still be presented)
func (s *ContinuationService) markTokenUsed(tokenID string) {
	s.cache.Set(usedKey(tokenID), "1", s.ttl)
}

func parkKey(tokenID string) string {
	return string(constants.CachePrefixContinuation) + tokenID
}

func usedKey(tokenID string) string {
	return "used_token:" + tokenID
}

// toStringSlice unwraps parked chunks; the Redis backend round-trips
// them through JSON as []interface{}.
func toStringSlice(val any) []string {
	switch v := val.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
