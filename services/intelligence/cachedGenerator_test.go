package ai_test

import (
	"context"
	"errors"
	"testing"

	ai "gochinamed/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type memoryStore struct {
	data    map[string]string
	readErr error
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.readErr != nil {
		return "", false, s.readErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	s.data[key] = value
	return nil
}

func TestCachedGenerator_SecondCallHitsCache(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("GenerateContent", mock.Anything, "prompt").Return(`{"plans":[]}`, nil).Once()
	store := &memoryStore{data: map[string]string{}}

	cached := ai.NewCachedGenerator(gen, store, nil)

	first, err := cached.GenerateContent(context.Background(), "prompt")
	require.NoError(t, err)
	second, err := cached.GenerateContent(context.Background(), "prompt")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, store.data, 1)
	gen.AssertExpectations(t)
}

func TestCachedGenerator_ErrorsAreNotCached(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("GenerateContent", mock.Anything, "prompt").Return("", errors.New("quota exceeded"))
	store := &memoryStore{data: map[string]string{}}

	_, err := ai.NewCachedGenerator(gen, store, nil).GenerateContent(context.Background(), "prompt")

	assert.Error(t, err)
	assert.Empty(t, store.data)
}

func TestCachedGenerator_StoreFailureFallsThrough(t *testing.T) {
	gen := new(MockTextGenerator)
	gen.On("GenerateContent", mock.Anything, "prompt").Return("text", nil)
	store := &memoryStore{data: map[string]string{}, readErr: errors.New("redis down")}

	text, err := ai.NewCachedGenerator(gen, store, nil).GenerateContent(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "text", text)
}
