package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Remote  RemoteConfig
	Session SessionConfig
	DB      DBConfig
	Catalog CatalogConfig
	HTTP    HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// RemoteConfig servidor EcoBazaar al que se delegan todas las reglas de negocio.
type RemoteConfig struct {
	BaseURL string // incluye el prefijo /api
	Timeout time.Duration
}

// Drivers de almacenamiento de sesión soportados.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SessionConfig persistencia local de la identidad.
type SessionConfig struct {
	Driver     string // sqlite | postgres
	SQLitePath string
	Secret     string // firma del sobre JWT persistido
	TTLMinutes int
	Issuer     string
}

// DBConfig configuración de PostgreSQL (solo con SESSION_DRIVER=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// CatalogConfig topes de los filtros del catálogo (valor centinela = sin filtro).
type CatalogConfig struct {
	MaxPrice    int
	MaxCarbon   int
	DefaultSort string
}

// HTTPConfig API local que consume la capa de presentación.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, REMOTE_BASE_URL, SESSION_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "ecobazaar-storefront"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Remote: RemoteConfig{
			BaseURL: strings.TrimRight(getString(v, "REMOTE_BASE_URL", "http://localhost:8080/api"), "/"),
			Timeout: time.Duration(getInt(v, "REMOTE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Session: SessionConfig{
			Driver:     strings.ToLower(getString(v, "SESSION_DRIVER", DriverSQLite)),
			SQLitePath: getString(v, "SESSION_SQLITE_PATH", "storefront.db"),
			Secret:     getString(v, "SESSION_SECRET", ""),
			TTLMinutes: getInt(v, "SESSION_TTL_MINUTES", 7*24*60),
			Issuer:     getString(v, "SESSION_ISSUER", "ecobazaar-storefront"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "ecobazaar_storefront"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Catalog: CatalogConfig{
			MaxPrice:    getInt(v, "CATALOG_MAX_PRICE", 1000),
			MaxCarbon:   getInt(v, "CATALOG_MAX_CARBON", 100),
			DefaultSort: getString(v, "CATALOG_DEFAULT_SORT", "newest"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
	}

	if cfg.Session.Driver != DriverSQLite && cfg.Session.Driver != DriverPostgres {
		return nil, fmt.Errorf("SESSION_DRIVER desconocido: %q", cfg.Session.Driver)
	}
	if cfg.Remote.Timeout <= 0 {
		return nil, fmt.Errorf("REMOTE_TIMEOUT_SECONDS debe ser positivo")
	}
	if cfg.Catalog.MaxPrice <= 0 || cfg.Catalog.MaxCarbon <= 0 {
		return nil, fmt.Errorf("CATALOG_MAX_PRICE y CATALOG_MAX_CARBON deben ser positivos")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
