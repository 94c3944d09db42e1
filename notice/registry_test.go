package notice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreate(t *testing.T) {
	var r Registry
	assert.Equal(t, uint64(0), r.NextID())

	id, err := r.Create(0, &Notice{Title: "a"})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
	assert.Equal(t, uint64(1), r.NextID())
	assert.Equal(t, 1, r.Len())

	id, err = r.Create(1, &Notice{Title: "b"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
}

func TestRegistryCreate_StaleExpectedID(t *testing.T) {
	var r Registry
	_, err := r.Create(1, &Notice{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = r.Create(0, &Notice{})
	require.NoError(t, err)

	// The id read before the first creation is now stale.
	_, err = r.Create(0, &Notice{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryGet(t *testing.T) {
	var r Registry
	_, err := r.Get(0)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = r.Create(0, &Notice{Title: "a"})
	require.NoError(t, err)

	n, err := r.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", n.Title)

	_, err = r.Get(1)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
