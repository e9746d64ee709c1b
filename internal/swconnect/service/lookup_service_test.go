package service

import (
	"context"
	"testing"

	"github.com/precihole/SolidworkConnect/internal/config"
	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"github.com/precihole/SolidworkConnect/internal/swconnect/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(opts []NameOption) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Name
	}
	return out
}

func TestLookups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	testutil.SeedItemGroup(t, env.db, "Raw Material", false)
	testutil.SeedItemGroup(t, env.db, "All Item Groups", true)
	testutil.SeedItemGroup(t, env.db, "Components", false)
	testutil.SeedUOM(t, env.db, "Nos", true)
	testutil.SeedUOM(t, env.db, "Kg", true)
	testutil.SeedUOM(t, env.db, "Gross", false)
	testutil.SeedDepartment(t, env.db, "PRODUCTION - PMTPL")
	testutil.SeedDepartment(t, env.db, "ASSEMBLY - PMTPL")
	testutil.SeedDepartment(t, env.db, "ACCOUNTS - PMTPL")
	testutil.SeedModificationType(t, env.db, "Material Change")
	testutil.SeedModificationType(t, env.db, "Dimension Change")

	groups, err := env.svc.Lookup.ItemGroups(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"All Item Groups", "Components", "Raw Material"}, names(groups))

	leaves, err := env.svc.Lookup.ItemGroups(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Components", "Raw Material"}, names(leaves))

	uoms, err := env.svc.Lookup.UOMs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kg", "Nos"}, names(uoms))

	depts, err := env.svc.Lookup.Departments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ASSEMBLY - PMTPL", "PRODUCTION - PMTPL"}, names(depts))

	types, err := env.svc.Lookup.ModificationTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dimension Change", "Material Change"}, names(types))
}

func TestAllowedDepartmentsIsCopy(t *testing.T) {
	env := newTestEnv(t)

	allowed := env.svc.Lookup.AllowedDepartments()
	assert.Equal(t, config.DefaultAllowedDepartments, allowed)

	allowed[0] = "HACKED"
	assert.Equal(t, "PURCHASE - PMTPL", env.svc.Lookup.AllowedDepartments()[0])
}

func TestDesignEmployees(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedEmployee(t, env.db, "EMP-3", "Zoya Khan", "u-3", "DESIGN - PMTPL", entity.EmployeeStatusActive)
	testutil.SeedEmployee(t, env.db, "EMP-1", "Asha Patil", "u-1", "DESIGN - PMTPL", entity.EmployeeStatusActive)
	testutil.SeedEmployee(t, env.db, "EMP-2", "Old Timer", "u-2", "DESIGN - PMTPL", entity.EmployeeStatusLeft)
	testutil.SeedEmployee(t, env.db, "EMP-4", "Prod Lead", "u-4", "PRODUCTION - PMTPL", entity.EmployeeStatusActive)

	emps, err := env.svc.Lookup.DesignEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, emps, 2)
	assert.Equal(t, "Asha Patil", emps[0].EmployeeName)
	assert.Equal(t, "EMP-1", emps[0].Name)
	assert.Equal(t, "u-1", emps[0].UserID)
	assert.Equal(t, "Zoya Khan", emps[1].EmployeeName)
}
