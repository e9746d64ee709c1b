package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Storage   StorageConfig   `mapstructure:"storage"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	SWConnect SWConnectConfig `mapstructure:"swconnect"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// MaxBodyBytes 请求体上限（base64 图纸会比原文件大约 1/3）
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres / sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Enabled 未配置 host 时不使用 redis
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type StorageConfig struct {
	Driver   string      `mapstructure:"driver"` // local / minio
	LocalDir string      `mapstructure:"local_dir"`
	MinIO    MinIOConfig `mapstructure:"minio"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SWConnectConfig 物料/DMRN 业务参数
type SWConnectConfig struct {
	DefaultUOM         string        `mapstructure:"default_uom"`
	AllowedDepartments []string      `mapstructure:"allowed_departments"`
	DesignDepartment   string        `mapstructure:"design_department"`
	LockTTL            time.Duration `mapstructure:"lock_ttl"`
	LockWait           time.Duration `mapstructure:"lock_wait"`
}

// DefaultAllowedDepartments 默认可选部门
var DefaultAllowedDepartments = []string{
	"PURCHASE - PMTPL",
	"MANUFACTURING - PMTPL",
	"PRODUCTION - PMTPL",
	"ASSEMBLY - PMTPL",
}

func Load() (*Config, error) {
	v := viper.New()

	// 设置配置文件
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	// 环境变量覆盖
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// 配置文件不存在，使用环境变量
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 64<<20)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "./data/swconnect.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 10*time.Minute)

	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_dir", "./uploads")

	v.SetDefault("jwt.issuer", "swconnect")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("swconnect.default_uom", "Nos")
	v.SetDefault("swconnect.allowed_departments", DefaultAllowedDepartments)
	v.SetDefault("swconnect.design_department", "DESIGN - PMTPL")
	v.SetDefault("swconnect.lock_ttl", 30*time.Second)
	v.SetDefault("swconnect.lock_wait", 5*time.Second)
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Database
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.path", "DB_PATH")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Storage
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.local_dir", "STORAGE_LOCAL_DIR")
	v.BindEnv("storage.minio.endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio.access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio.secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio.bucket", "MINIO_BUCKET")
	v.BindEnv("storage.minio.use_ssl", "MINIO_USE_SSL")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")

	v.BindEnv("swconnect.design_department", "SWCONNECT_DESIGN_DEPARTMENT")
	v.BindEnv("swconnect.default_uom", "SWCONNECT_DEFAULT_UOM")
}
