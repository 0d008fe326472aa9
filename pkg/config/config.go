package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados (estrategia de backend de datos).
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se lee una sola vez al arrancar el proceso.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DB       DBConfig
	Store    StoreConfig
	JWT      JWTConfig
	Redis    RedisConfig
	KPI      KPIConfig
	Security SecurityConfig
	Proxy    ProxyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Version  string
	LogLevel string
	DocsPath string // ruta al swagger.json servido en /docs
}

// IsProduction indica si el entorno es producción.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// StoreConfig selecciona el backend de datos.
type StoreConfig struct {
	Driver     string // memory | postgres | sqlite
	SQLitePath string
	SeedSample bool // cargar datos de ejemplo si el almacén está vacío
}

// JWTConfig configuración de tokens.
type JWTConfig struct {
	Secret                string
	Issuer                string
	AccessTTL             time.Duration
	RefreshTTL            time.Duration
	RefreshReuseDetection bool
}

// RedisConfig caché de sesiones (opcional). URL vacía = deshabilitado.
type RedisConfig struct {
	URL        string
	SessionTTL time.Duration
}

// KPIConfig parámetros de negocio del cálculo de KPIs.
// Ambos valores son provisionales y están pendientes de definición de producto.
type KPIConfig struct {
	OperatingExpenseRate float64
	RevenueGrowth        float64
}

// SecurityConfig CORS, hosts permitidos y rate limiting.
type SecurityConfig struct {
	AllowedOrigins   []string
	AllowedHosts     []string
	RateLimitEnabled bool
}

// ProxyConfig proxy CORS de desarrollo (cmd/corsproxy).
type ProxyConfig struct {
	Target string // URL base del API desplegado
	Port   int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo .env).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "sales-analytics-api"),
			Version:  getString(v, "APP_VERSION", "4.0.0"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			DocsPath: getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "PORT", getInt(v, "HTTP_PORT", 8000)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "sales_user"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "sales_analytics"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			MinConns:    getInt(v, "DB_MIN_CONNS", 1),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(getString(v, "STORE_DRIVER", StoreMemory)),
			SQLitePath: getString(v, "SQLITE_PATH", "sales_analytics.db"),
			SeedSample: getBool(v, "SEED_SAMPLE_DATA", true),
		},
		JWT: JWTConfig{
			Secret:                getString(v, "JWT_SECRET", ""),
			Issuer:                getString(v, "JWT_ISSUER", "sales-analytics-api"),
			AccessTTL:             time.Duration(getInt(v, "JWT_ACCESS_EXPIRATION_MINUTES", 60)) * time.Minute,
			RefreshTTL:            time.Duration(getInt(v, "JWT_REFRESH_EXPIRATION_DAYS", 7)) * 24 * time.Hour,
			RefreshReuseDetection: getBool(v, "JWT_REFRESH_REUSE_DETECTION", false),
		},
		Redis: RedisConfig{
			URL:        getString(v, "REDIS_URL", ""),
			SessionTTL: time.Duration(getInt(v, "SESSION_TTL_SECONDS", 3600)) * time.Second,
		},
		KPI: KPIConfig{
			OperatingExpenseRate: getFloat(v, "KPI_OPERATING_EXPENSE_RATE", 0.10),
			RevenueGrowth:        getFloat(v, "KPI_REVENUE_GROWTH", 15.5),
		},
		Security: SecurityConfig{
			AllowedOrigins:   getList(v, "ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"}),
			AllowedHosts:     getList(v, "ALLOWED_HOSTS", []string{"*"}),
			RateLimitEnabled: getBool(v, "RATE_LIMIT_ENABLED", true),
		},
		Proxy: ProxyConfig{
			Target: strings.TrimRight(getString(v, "PROXY_TARGET", "http://localhost:8000"), "/"),
			Port:   getInt(v, "PROXY_PORT", 8080),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreMemory, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("config: STORE_DRIVER inválido %q (memory|postgres|sqlite)", c.Store.Driver)
	}
	if c.JWT.Secret == "" {
		if c.App.IsProduction() {
			return fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
		}
		c.JWT.Secret = "dev-secret-change-me"
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("config: las duraciones de token deben ser positivas")
	}
	if c.KPI.OperatingExpenseRate < 0 || c.KPI.OperatingExpenseRate > 1 {
		return fmt.Errorf("config: KPI_OPERATING_EXPENSE_RATE fuera de rango [0,1]")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if !v.IsSet(key) {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
	if err != nil {
		return def
	}
	return f
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}

// getList lee una lista separada por comas ("a,b,c").
func getList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return def
	}
	var out []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
