package captcha

import (
	"context"
	"testing"

	apperrors "github.com/leeforge/rucaptcha/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBatch(t *testing.T) {
	results, err := GenerateBatch(context.Background(), NewBuilder().Length(5), 12, 4)
	require.NoError(t, err)
	require.Len(t, results, 12)

	for _, c := range results {
		require.NotNil(t, c)
		assert.Len(t, c.Text, 5)
		assert.True(t, InAlphabet(c.Text))
		assert.NotEmpty(t, c.Image)
	}
}

func TestGenerateBatchEdgeCounts(t *testing.T) {
	results, err := GenerateBatch(context.Background(), NewBuilder(), 0, 2)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = GenerateBatch(context.Background(), NewBuilder(), -1, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfiguration)
}

func TestGenerateBatchPropagatesBuildErrors(t *testing.T) {
	_, err := GenerateBatch(context.Background(), NewBuilder().Size(5, 5), 3, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfiguration)
}

func TestGenerateBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := GenerateBatch(ctx, NewBuilder(), 5, 1)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, apperrors.ErrCanceled)
}

func TestGenerateBatchSharedSeededSource(t *testing.T) {
	// 共享随机源在并发下也必须安全
	results, err := GenerateBatch(context.Background(), NewBuilder().Source(NewSeededSource(1)), 8, 8)
	require.NoError(t, err)
	assert.Len(t, results, 8)
}
