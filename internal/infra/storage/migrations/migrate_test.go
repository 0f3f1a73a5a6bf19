package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_SortedAndEmbedded(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	assert.Equal(t, "001_init.sql", files[0])
	assert.IsIncreasing(t, files)

	body, err := fs.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "CONSTRAINT booking_guid_key UNIQUE (guid)")
}
