package repository

import (
	"context"
	"testing"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDMRN(t *testing.T, repo *DMRNRepository, name string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.DMRN{
		Name:           name,
		PostingDate:    "2026-03-01",
		Originator:     "EMP-001",
		ApprovedBy:     "EMP-002",
		FromDepartment: "Design",
		DesignEngineer: "EMP-003",
	}))
}

func TestDMRNGenerateName(t *testing.T) {
	ctx := context.Background()
	repo := NewDMRNRepository(testutil.SetupTestDB(t))

	name, err := repo.GenerateName(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, "DMRN-2026-00001", name)

	seedDMRN(t, repo, "DMRN-2026-00007")
	seedDMRN(t, repo, "DMRN-2025-00042")

	name, err = repo.GenerateName(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, "DMRN-2026-00008", name)
}

func TestDMRNGenerateNameSkipsNonNumericSuffix(t *testing.T) {
	ctx := context.Background()
	repo := NewDMRNRepository(testutil.SetupTestDB(t))

	// 按字符串倒序这两条都排在 00007 前面
	seedDMRN(t, repo, "DMRN-2026-00007")
	seedDMRN(t, repo, "DMRN-2026-abc")
	seedDMRN(t, repo, "DMRN-2026-00007-import")

	name, err := repo.GenerateName(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, "DMRN-2026-00008", name)

	seedDMRN(t, repo, name)
	name, err = repo.GenerateName(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, "DMRN-2026-00009", name)
}
