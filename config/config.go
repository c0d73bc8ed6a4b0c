package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	JWT      JWTConfig
	Server   ServerConfig
	Database DatabaseConfig
	Password PasswordConfig
	Authz    AuthzConfig
	Cache    CacheConfig
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string        `envconfig:"JWT_SECRET" default:"your-secret-key-change-in-production"`
	Expiration time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`
	Issuer     string        `envconfig:"JWT_ISSUER" default:"kidsenglish"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"3000"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
	AllowOrigins string        `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`
}

// DatabaseConfig chọn driver và DSN. Driver "sqlite" dùng cho môi trường dev và test.
type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"postgres"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"kidsenglish"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	// SQLitePath chỉ dùng khi Driver = "sqlite"
	SQLitePath string `envconfig:"DB_SQLITE_PATH" default:"kidsenglish.db"`
}

// PasswordConfig holds password policy
type PasswordConfig struct {
	MinLength          int  `envconfig:"PASSWORD_MIN_LENGTH" default:"8"`
	RequireUppercase   bool `envconfig:"PASSWORD_REQUIRE_UPPERCASE" default:"false"`
	RequireLowercase   bool `envconfig:"PASSWORD_REQUIRE_LOWERCASE" default:"true"`
	RequireDigit       bool `envconfig:"PASSWORD_REQUIRE_DIGIT" default:"true"`
	RequireSpecialChar bool `envconfig:"PASSWORD_REQUIRE_SPECIAL_CHAR" default:"false"`
	MinSpecialChars    int  `envconfig:"PASSWORD_MIN_SPECIAL_CHARS" default:"1"`
}

// AuthzConfig holds authorization settings
type AuthzConfig struct {
	// SuperAdminRole là tên role hệ thống được bypass mọi kiểm tra permission.
	// Bypass so khớp chính xác theo tên, đổi tên role này sẽ làm mất bypass.
	SuperAdminRole string `envconfig:"AUTHZ_SUPER_ADMIN_ROLE" default:"Super Admin"`
	// DefaultRole được gán cho user tự đăng ký
	DefaultRole        string `envconfig:"AUTHZ_DEFAULT_ROLE" default:"Student"`
	SuperAdminEmail    string `envconfig:"SUPER_ADMIN_EMAIL"`
	SuperAdminPassword string `envconfig:"SUPER_ADMIN_PASSWORD"`
}

// CacheConfig holds optional Redis principal cache settings
type CacheConfig struct {
	Enabled   bool          `envconfig:"CACHE_ENABLED" default:"false"`
	RedisAddr string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	TTL       time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	Prefix    string        `envconfig:"CACHE_PREFIX" default:"kidsenglish:authz"`
}

// LoadConfig loads configuration from environment variables.
// Mỗi nhóm được process riêng để envconfig không tự thêm prefix theo tên field cha.
func LoadConfig() (*Config, error) {
	var cfg Config
	sections := []interface{}{
		&cfg.JWT,
		&cfg.Server,
		&cfg.Database,
		&cfg.Password,
		&cfg.Authz,
		&cfg.Cache,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, err
		}
	}
	if len(cfg.JWT.Secret) == 0 {
		return nil, errors.New("config: JWT_SECRET must not be empty")
	}
	return &cfg, nil
}

// DSN builds the postgres connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}
