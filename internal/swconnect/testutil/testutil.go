package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/precihole/SolidworkConnect/internal/middleware"
	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	JWTSecret = "swconnect-test-jwt-secret"
	JWTIssuer = "swconnect"

	DefaultUserID = "test-user-001"
)

// SetupTestDB 创建内存 sqlite 测试库并迁移全部表，测试结束自动关闭
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// 每个连接都是独立的内存库，只能保留一个
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(entity.All()...); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// SetupRouter 创建测试用 gin 路由
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// 物料编码可能含 /，按 %2F 转义后作为单个路径段匹配
	r.UseRawPath = true
	r.UnescapePathValues = false
	r.Use(gin.Recovery())
	return r
}

// AuthGroup 创建带 JWT 认证的路由组
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret, JWTIssuer))
}

// GenerateTestToken 生成测试 token
func GenerateTestToken(userID, name, email string, roles, permissions []string) string {
	if roles == nil {
		roles = []string{}
	}
	if permissions == nil {
		permissions = []string{}
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"name":  name,
		"email": email,
		"roles": roles,
		"perms": permissions,
		"iss":   JWTIssuer,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken 拥有全部权限的测试用户
func DefaultTestToken() string {
	return GenerateTestToken(
		DefaultUserID,
		"Test Engineer",
		"engineer@test.com",
		[]string{"design_engineer"},
		[]string{middleware.PermAll},
	)
}

// ReadOnlyTestToken 没有任何写权限的测试用户
func ReadOnlyTestToken() string {
	return GenerateTestToken("test-user-002", "Read Only", "viewer@test.com", nil, nil)
}

// GuestTestToken 匿名用户
func GuestTestToken() string {
	return GenerateTestToken("Guest", "", "", nil, nil)
}

// DoRequest 执行请求
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse 解析统一响应体
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// Data 取响应中的 data 对象
func Data(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	resp := ParseResponse(w)
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("Response has no data object: %s", w.Body.String())
	}
	return data
}

func seed(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("Failed to seed %T: %v", value, err)
	}
}

// SeedItem 创建物料
func SeedItem(t *testing.T, db *gorm.DB, code, name, revision string) *entity.Item {
	t.Helper()
	item := &entity.Item{
		ItemCode:    code,
		ItemName:    name,
		ItemGroup:   "Components",
		StockUOM:    "Nos",
		IsStockItem: true,
		Revision:    revision,
		CreatedBy:   DefaultUserID,
		ModifiedBy:  DefaultUserID,
	}
	seed(t, db, item)
	return item
}

// SeedItemGroup 创建物料组
func SeedItemGroup(t *testing.T, db *gorm.DB, name string, isGroup bool) {
	t.Helper()
	seed(t, db, &entity.ItemGroup{Name: name, ParentItemGroup: "All Item Groups", IsGroup: isGroup})
}

// SeedUOM 创建计量单位
func SeedUOM(t *testing.T, db *gorm.DB, name string, enabled bool) {
	t.Helper()
	seed(t, db, &entity.UOM{Name: name, Enabled: enabled})
}

// SeedDepartment 创建部门
func SeedDepartment(t *testing.T, db *gorm.DB, name string) {
	t.Helper()
	seed(t, db, &entity.Department{Name: name, DepartmentName: name, Company: "PMTPL"})
}

// SeedModificationType 创建变更类型
func SeedModificationType(t *testing.T, db *gorm.DB, name string) {
	t.Helper()
	seed(t, db, &entity.ModificationType{Name: name})
}

// SeedEmployee 创建员工
func SeedEmployee(t *testing.T, db *gorm.DB, id, name, userID, department, status string) *entity.Employee {
	t.Helper()
	emp := &entity.Employee{
		Name:         id,
		EmployeeName: name,
		UserID:       userID,
		Department:   department,
		Status:       status,
	}
	seed(t, db, emp)
	return emp
}
