package service

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/precihole/SolidworkConnect/internal/config"
	"github.com/precihole/SolidworkConnect/internal/swconnect/repository"
	"github.com/precihole/SolidworkConnect/internal/swconnect/storage"
	"github.com/precihole/SolidworkConnect/internal/swconnect/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testActor = Actor{UserID: "u-001", Name: "Asha Patil", Email: "asha@example.com"}

func jsonUnmarshal(s string, v interface{}) error {
	return json.Unmarshal([]byte(s), v)
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

type testEnv struct {
	db    *gorm.DB
	repos *repository.Repositories
	svc   *Services
	store *storage.LocalStore
	cfg   *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{SWConnect: config.SWConnectConfig{
		DefaultUOM:         "Nos",
		AllowedDepartments: config.DefaultAllowedDepartments,
		DesignDepartment:   "DESIGN - PMTPL",
		LockWait:           2 * time.Second,
	}}
	repos := repository.NewRepositories(db)
	return &testEnv{
		db:    db,
		repos: repos,
		svc:   NewServices(repos, store, nil, cfg, nil),
		store: store,
		cfg:   cfg,
	}
}
