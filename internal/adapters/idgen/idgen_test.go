package idgen_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/agentlink/internal/adapters/idgen"
)

func TestCounterIncrements(t *testing.T) {
	c := idgen.NewCounter("t-")

	assert.Equal(t, "t-1", c.NewID())
	assert.Equal(t, "t-2", c.NewID())
	assert.Equal(t, "t-3", c.NewID())
}

func TestUUIDIsUniqueAndParsable(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		id := idgen.UUID{}.NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestNew(t *testing.T) {
	src, err := idgen.New("counter")
	require.NoError(t, err)
	assert.Equal(t, "id-1", src.NewID())

	src, err = idgen.New("")
	require.NoError(t, err)
	assert.IsType(t, idgen.UUID{}, src)

	_, err = idgen.New("snowflake")
	assert.Error(t, err)
}
