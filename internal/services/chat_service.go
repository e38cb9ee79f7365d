package services

import (
	"context"
	"errors"
	"fmt"

	"cargo-charter/charterdesk/internal/chat"
	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/models/dtos"
)

// ChatService sizes chat-format responses and drives the continuation
// flow for results too large for one page.
type ChatService struct {
	continuations *chat.ContinuationService
	config        runtimeConfig
}

func NewChatService(continuations *chat.ContinuationService, config runtimeConfig) *ChatService {
	return &ChatService{
		continuations: continuations,
		config:        config,
	}
}

// DisplayLimit returns how many result entries one chat page shows.
func (s *ChatService) DisplayLimit(ctx context.Context) int {
	return s.config.GetIntVal(ctx, common.ConfigKeyChatDisplayLimit, chat.DefaultDisplayLimit)
}

// ChunkLimit returns the transport message size in characters.
func (s *ChatService) ChunkLimit(ctx context.Context) int {
	return s.config.GetIntVal(ctx, common.ConfigKeyChatChunkLimit, chat.DefaultChunkLimit)
}

// Package splits the rendered first page into transport chunks. A
// non-empty remainder is parked behind a continuation token the client
// presents to page further.
func (s *ChatService) Package(ctx context.Context, firstPage, remainder string) (*dtos.ChatPayload, error) {
	limit := s.ChunkLimit(ctx)

	payload := &dtos.ChatPayload{Messages: chat.Split(firstPage, limit)}
	if remainder == "" {
		return payload, nil
	}

	token, err := s.continuations.Issue(chat.Split(remainder, limit))
	if err != nil {
		return nil, fmt.Errorf("parking continuation chunks: %w", err)
	}
	payload.ContinuationToken = token
	return payload, nil
}

// Continue redeems a continuation token for the next batch of parked
// chunks.
func (s *ChatService) Continue(ctx context.Context, token string) (*dtos.ContinuationResult, error) {
	chunks, remaining, next, err := s.continuations.Redeem(token)
	if err != nil {
		code := constants.ErrCodeContinuationInvalid
		switch {
		case errors.Is(err, chat.ErrTokenExpired):
			code = constants.ErrCodeContinuationExpired
		case errors.Is(err, chat.ErrTokenUsed):
			code = constants.ErrCodeContinuationUsed
		}
		return nil, &QueryError{
			Code:    code,
			Message: constants.GetErrorMessage(code),
			Err:     err,
		}
	}

	return &dtos.ContinuationResult{
		Messages:          chunks,
		Remaining:         remaining,
		ContinuationToken: next,
	}, nil
}
