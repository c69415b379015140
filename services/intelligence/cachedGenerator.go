package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"
)

// CachedGenerator serves repeated prompts from a ResponseStore.
// Store failures are logged and never fail the call.
type CachedGenerator struct {
	next   TextGenerator
	store  ResponseStore
	logger *zap.Logger
}

func NewCachedGenerator(next TextGenerator, store ResponseStore, logger *zap.Logger) *CachedGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGenerator{next: next, store: store, logger: logger}
}

func (c *CachedGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	key := promptKey(prompt)

	if cached, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("advisor cache read failed", zap.Error(err))
	} else if ok {
		c.logger.Debug("advisor cache hit", zap.String("key", key))
		return cached, nil
	}

	text, err := c.next.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("advisor call failed: %w", err)
	}

	if err := c.store.Set(ctx, key, text); err != nil {
		c.logger.Warn("advisor cache write failed", zap.Error(err))
	}
	return text, nil
}

func promptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
