package service

import (
	"context"
	"strings"
	"testing"

	"github.com/precihole/SolidworkConnect/internal/swconnect/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.SeedItem(t, env.db, "PMT-B", "Bush", "R2")
	testutil.SeedItem(t, env.db, "PMT-A", "Arm", "")

	_, err := env.svc.File.ReplaceItemDrawing(ctx, testActor, "PMT-B", b64("%PDF"))
	require.NoError(t, err)

	f, filename, err := env.svc.Export.ExportItems(ctx)
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, strings.HasPrefix(filename, "Items_"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	rows, err := f.GetRows(ItemRegisterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, itemExportHeaders, rows[0])
	assert.Equal(t, "PMT-A", rows[1][0])
	assert.Equal(t, "R0", rows[1][6])
	assert.Equal(t, "PMT-B", rows[2][0])
	assert.Equal(t, "R2", rows[2][6])
	assert.Equal(t, "PMT-B Bush.pdf", rows[2][7])
}
