package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/farellandr/dealhub/internal/models"
	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConfigPathEnv names a YAML file to read. Environment variables still
// override values from the file.
const ConfigPathEnv = "DEALHUB_CONFIG_PATH"

type Config struct {
	Env        string           `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	DB         DBConfig         `yaml:"db"`
	Auth       AuthConfig       `yaml:"auth"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Media      MediaConfig      `yaml:"media"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Log        LogConfig        `yaml:"log"`
}

type HTTPConfig struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DBConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"dealhub"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port,
	)
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL      time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
	AdminEmail    string        `yaml:"admin_email" env:"ADMIN_EMAIL"`
	AdminPassword string        `yaml:"admin_password" env:"ADMIN_PASSWORD"`
}

// RedisConfig leaves caching off when Addr is empty.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	TagTTL   time.Duration `yaml:"tag_ttl" env:"REDIS_TAG_TTL" env-default:"10m"`
}

// KafkaConfig leaves visit events off when no brokers are listed.
type KafkaConfig struct {
	Brokers    []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	VisitTopic string   `yaml:"visit_topic" env:"KAFKA_VISIT_TOPIC" env-default:"deal.visit"`
}

type MediaConfig struct {
	UploadDir string `yaml:"upload_dir" env:"MEDIA_UPLOAD_DIR" env-default:"./uploads/"`
	BaseURL   string `yaml:"base_url" env:"MEDIA_BASE_URL" env-default:"/media"`
	MaxSizeMB int64  `yaml:"max_size_mb" env:"MEDIA_MAX_SIZE_MB" env-default:"5"`
}

type MigrationsConfig struct {
	Enabled bool   `yaml:"enabled" env:"MIGRATIONS_ENABLED" env-default:"true"`
	Path    string `yaml:"path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

func LoadConfig() (*Config, error) {
	var cfg Config

	if path := os.Getenv(ConfigPathEnv); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to find config file: %w", err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Prepare(db, cfg.Auth); err != nil {
		return nil, err
	}

	return db, nil
}

// Prepare migrates every model and seeds staff roles and, when configured,
// the first admin account.
func Prepare(db *gorm.DB, auth AuthConfig) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	return seedAdmin(db, auth)
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin},
		{Name: models.RoleEditor},
	}

	for _, role := range roles {
		var existingRole models.Role
		err := db.Where("name = ?", role.Name).First(&existingRole).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&role).Error; err != nil {
				return fmt.Errorf("seed role %s: %w", role.Name, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}
	return nil
}

func seedAdmin(db *gorm.DB, auth AuthConfig) error {
	if auth.AdminEmail == "" || auth.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.Staff{}).Where("email = ?", auth.AdminEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	var role models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	admin := models.Staff{
		Name:     "Administrator",
		Email:    auth.AdminEmail,
		Password: string(hashedPassword),
		RoleID:   role.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
