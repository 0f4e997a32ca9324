package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/deal-mirror-api/internal/domain"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Bitrix   Bitrix   `mapstructure:",squash"`
	DealSync DealSync `mapstructure:",squash"`
	Metrics  Metrics  `mapstructure:",squash"`
	Admin    Admin    `mapstructure:",squash"`
	// SecretKey descriptografa Bitrix.EncryptedLink
	SecretKey string `mapstructure:"secret_key"`
}

type App struct {
	LogLevel       string `mapstructure:"log_level"`
	LogFile        string `mapstructure:"log_file"`
	LogMaxSizeMB   int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups  int    `mapstructure:"log_max_backups"`
	LogMaxAgeDays  int    `mapstructure:"log_max_age_days"`
	LogJSONEnabled bool   `mapstructure:"log_json_enabled"`
}

type Server struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Path     string `mapstructure:"database_path"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Bitrix struct {
	EncryptedLink     string               `mapstructure:"bx_link"`
	Variant           domain.SourceVariant `mapstructure:"source_variant"`
	FunnelID          int64                `mapstructure:"funnel_id"`
	EntityTypeID      int64                `mapstructure:"smart_process_entity_type_id"`
	DocumentsFieldKey string               `mapstructure:"documents_ids_userfield_id"`
	CityFieldKey      string               `mapstructure:"city_userfield_id"`
	RequestsPerSecond float64              `mapstructure:"bitrix_requests_per_second"`
	RequestBurst      int                  `mapstructure:"bitrix_request_burst"`
	RequestTimeout    time.Duration        `mapstructure:"bitrix_request_timeout"`
}

type DealSync struct {
	CronSchedule string `mapstructure:"deal_sync_cron"`
	Enabled      bool   `mapstructure:"deal_sync_enabled"`
}

type Metrics struct {
	Enabled bool `mapstructure:"metrics_enabled"`
}

// Admin protege as rotas administrativas (clear_deals e cron) com JWT HS256.
// Sem ADMIN_JWT_SECRET essas rotas recusam toda requisição.
type Admin struct {
	JWTSecret string        `mapstructure:"admin_jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"admin_token_ttl"`
}

// Scope retorna o escopo remoto da variante configurada: o CATEGORY_ID do funil
// ou o entityTypeId do smart process
func (b Bitrix) Scope() int64 {
	if b.Variant == domain.SourceVariantSmartProcess {
		return b.EntityTypeID
	}
	return b.FunnelID
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "2354")
	viper.SetDefault("BASE_URL", "/ostatki_two/")
	viper.SetDefault("REQUEST_TIMEOUT", "20m")

	viper.SetDefault("DATABASE_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_PATH", "db/database.db")
	viper.SetDefault("DATABASE_URL", "localhost:5432/deals?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("BX_LINK", "")
	viper.SetDefault("SECRET_KEY", "")
	viper.SetDefault("SOURCE_VARIANT", string(domain.SourceVariantFunnel))
	viper.SetDefault("FUNNEL_ID", 0)
	viper.SetDefault("SMART_PROCESS_ENTITY_TYPE_ID", 0)
	viper.SetDefault("DOCUMENTS_IDS_USERFIELD_ID", "")
	viper.SetDefault("CITY_USERFIELD_ID", "")
	viper.SetDefault("BITRIX_REQUESTS_PER_SECOND", 2)
	viper.SetDefault("BITRIX_REQUEST_BURST", 2)
	viper.SetDefault("BITRIX_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("DEAL_SYNC_CRON", "0 3 * * *") // todo dia às 03:00
	viper.SetDefault("DEAL_SYNC_ENABLED", false)

	viper.SetDefault("METRICS_ENABLED", true)

	viper.SetDefault("ADMIN_JWT_SECRET", "")
	viper.SetDefault("ADMIN_TOKEN_TTL", "24h")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("LOG_MAX_SIZE_MB", 50)
	viper.SetDefault("LOG_MAX_BACKUPS", 5)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 30)
	viper.SetDefault("LOG_JSON_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("config: .env not read by viper, relying on process environment: ", err)
	}

	config := &Config{}
	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Bitrix.Variant = domain.SourceVariant(strings.ToLower(strings.TrimSpace(string(config.Bitrix.Variant))))
	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// Validate aponta a primeira configuração obrigatória ausente para a variante escolhida
func (c *Config) Validate() error {
	switch c.Bitrix.Variant {
	case domain.SourceVariantFunnel:
		if c.Bitrix.FunnelID == 0 {
			return fmt.Errorf("config: FUNNEL_ID is required for the %s source", c.Bitrix.Variant)
		}
		if c.Bitrix.CityFieldKey == "" {
			return fmt.Errorf("config: CITY_USERFIELD_ID is required for the %s source", c.Bitrix.Variant)
		}
	case domain.SourceVariantSmartProcess:
		if c.Bitrix.EntityTypeID == 0 {
			return fmt.Errorf("config: SMART_PROCESS_ENTITY_TYPE_ID is required for the %s source", c.Bitrix.Variant)
		}
	default:
		return fmt.Errorf("config: unknown SOURCE_VARIANT %q", c.Bitrix.Variant)
	}

	if c.Bitrix.DocumentsFieldKey == "" {
		return fmt.Errorf("config: DOCUMENTS_IDS_USERFIELD_ID is required")
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("config: unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	return nil
}

// BuildDSN monta a string de conexão do driver configurado
func BuildDSN(db Database) string {
	if db.Driver == DriverPostgres {
		return fmt.Sprintf("%s://%s:%s@%s", db.Driver, db.User, db.Password, db.URL)
	}
	return "file:" + db.Path
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("config: loaded .env from ", location)
			return
		}
	}

	logrus.Debug("config: no .env file found, using process environment")
}
