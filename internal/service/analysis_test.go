package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/zenkitchen/backend/internal/service"
)

func TestParseAnalysis(t *testing.T) {
	t.Run("code fence", func(t *testing.T) {
		drafts, err := service.ParseAnalysis("```json\n{\"items\":[{\"name\":\" 香蕉 \",\"category\":\"水果\",\"suggestedUse\":\"尽快食用\"}]}\n```")
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "香蕉", drafts[0].Name)
		assert.Equal(t, "尽快食用", drafts[0].SuggestedUse)
	})

	t.Run("missing category is dropped", func(t *testing.T) {
		drafts, err := service.ParseAnalysis(`{"items":[{"name":"可乐"},{"name":"雪碧","category":"饮品","expiryDate":"2024-13-40"}]}`)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "雪碧", drafts[0].Name)
		assert.Nil(t, drafts[0].ExpiryDate)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := service.ParseAnalysis(`{"items":[],"totalCount":0}`)
		assert.ErrorIs(t, err, service.ErrNoRecognizedItems)
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := service.ParseAnalysis(`{"items":"牛奶"}`)
		assert.Error(t, err)
	})
}
