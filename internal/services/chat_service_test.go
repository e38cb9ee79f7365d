package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"cargo-charter/charterdesk/internal/chat"
	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
)

// missCache drops everything, simulating an evicted backend.
type missCache struct{}

func (missCache) Set(string, interface{}, time.Duration) {}
func (missCache) Get(string) (interface{}, bool)         { return nil, false }
func (missCache) Delete(string)                          {}
func (missCache) GetOrSet(_ string, _ time.Duration, loader func() (any, error)) (interface{}, error) {
	return loader()
}
func (missCache) Close() error { return nil }

func newTestChatService(cache common.CacheInterface, config runtimeConfig) *ChatService {
	continuations := chat.NewContinuationService([]byte("test-signing-key"), cache, time.Minute)
	return NewChatService(continuations, config)
}

func TestPackage_SinglePage(t *testing.T) {
	svc := newTestChatService(common.NewCacheService(60, 120), &stubConfig{})

	payload, err := svc.Package(context.Background(), "Found 3 results:\n1. A\n2. B\n3. C", "")
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	if len(payload.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(payload.Messages))
	}
	if payload.ContinuationToken != "" {
		t.Error("no remainder means no continuation token")
	}
}

func TestPackage_RemainderParkedBehindToken(t *testing.T) {
	svc := newTestChatService(common.NewCacheService(60, 120), &stubConfig{})

	payload, err := svc.Package(context.Background(), "first page", "51. Tail Operator\n52. Another One")
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	if payload.ContinuationToken == "" {
		t.Fatal("expected a continuation token for the remainder")
	}

	cont, err := svc.Continue(context.Background(), payload.ContinuationToken)
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	joined := strings.Join(cont.Messages, "\n")
	if !strings.Contains(joined, "51. Tail Operator") {
		t.Errorf("redeemed chunks should carry the remainder, got %q", joined)
	}
	if cont.Remaining != 0 || cont.ContinuationToken != "" {
		t.Errorf("small remainder should finish in one redemption, got %+v", cont)
	}
}

func TestPackage_ChunksRespectConfiguredLimit(t *testing.T) {
	svc := newTestChatService(common.NewCacheService(60, 120), &stubConfig{
		ints: map[string]int{common.ConfigKeyChatChunkLimit: 40},
	})

	text := strings.Repeat("0123456789\n", 12)
	payload, err := svc.Package(context.Background(), text, "")
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	if len(payload.Messages) < 2 {
		t.Fatalf("a 40-char limit should split this text, got %d chunks", len(payload.Messages))
	}
	for i, msg := range payload.Messages {
		if len(msg) > 40 {
			t.Errorf("chunk %d exceeds the configured limit: %d chars", i, len(msg))
		}
	}
}

func TestContinue_MapsTokenFailures(t *testing.T) {
	svc := newTestChatService(common.NewCacheService(60, 120), &stubConfig{})

	_, err := svc.Continue(context.Background(), "not-a-token")
	if code := queryCode(t, err); code != constants.ErrCodeContinuationInvalid {
		t.Errorf("expected %s, got %s", constants.ErrCodeContinuationInvalid, code)
	}

	payload, err := svc.Package(context.Background(), "page", "more")
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	if _, err := svc.Continue(context.Background(), payload.ContinuationToken); err != nil {
		t.Fatalf("first redemption: %v", err)
	}
	_, err = svc.Continue(context.Background(), payload.ContinuationToken)
	if code := queryCode(t, err); code != constants.ErrCodeContinuationUsed {
		t.Errorf("expected %s on reuse, got %s", constants.ErrCodeContinuationUsed, code)
	}
}

func TestContinue_EvictedBacklogReadsAsExpired(t *testing.T) {
	svc := newTestChatService(missCache{}, &stubConfig{})

	payload, err := svc.Package(context.Background(), "page", "parked but gone")
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	_, err = svc.Continue(context.Background(), payload.ContinuationToken)
	if code := queryCode(t, err); code != constants.ErrCodeContinuationExpired {
		t.Errorf("expected %s, got %s", constants.ErrCodeContinuationExpired, code)
	}
}

func TestLimits_ConfigOverridesAndDefaults(t *testing.T) {
	ctx := context.Background()

	svc := newTestChatService(common.NewCacheService(60, 120), &stubConfig{
		ints: map[string]int{
			common.ConfigKeyChatDisplayLimit: 10,
			common.ConfigKeyChatChunkLimit:   512,
		},
	})
	if got := svc.DisplayLimit(ctx); got != 10 {
		t.Errorf("expected configured display limit 10, got %d", got)
	}
	if got := svc.ChunkLimit(ctx); got != 512 {
		t.Errorf("expected configured chunk limit 512, got %d", got)
	}

	svc = newTestChatService(common.NewCacheService(60, 120), &stubConfig{})
	if got := svc.DisplayLimit(ctx); got != chat.DefaultDisplayLimit {
		t.Errorf("expected default display limit %d, got %d", chat.DefaultDisplayLimit, got)
	}
	if got := svc.ChunkLimit(ctx); got != chat.DefaultChunkLimit {
		t.Errorf("expected default chunk limit %d, got %d", chat.DefaultChunkLimit, got)
	}
}
