package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Backends de almacenamiento soportados.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Auth    AuthConfig
	Storage StorageConfig
	Objects ObjectStoreConfig
	Export  ExportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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
	AutoMigrate bool
	MaxConns    int
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
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

// AuthConfig reglas de registro y administración de cuentas.
type AuthConfig struct {
	// OfflineMode: un token indescifrable produce la identidad por defecto en lugar de 401.
	OfflineMode         bool
	AllowedEmailDomains []string
	AdminPromotionCode  string
	AdminMaxCount       int
}

// StorageConfig selecciona el backend de registros.
type StorageConfig struct {
	Backend string // postgres | memory
}

// ObjectStoreConfig almacenamiento de fotos: S3/MinIO si hay endpoint, si no disco local.
type ObjectStoreConfig struct {
	Endpoint          string
	AccessKey         string
	SecretKey         string
	UseSSL            bool
	Bucket            string
	PublicBaseURL     string
	FileStorePath     string
	FilePublicBaseURL string
}

// ExportConfig parámetros del motor de exportación.
type ExportConfig struct {
	PhotoTimeoutSeconds int
	MinSheetBytes       int
	// PhotoOrigin origen contra el que se descargan las fotos con URL relativa.
	// Vacío: el propio servidor (ver Config.PhotoOrigin).
	PhotoOrigin         string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
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

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "obras-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "obras"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 24*60),
			Issuer:     getString(v, "JWT_ISSUER", "obras-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Auth: AuthConfig{
			OfflineMode:         getBool(v, "AUTH_OFFLINE_MODE", false),
			AllowedEmailDomains: getList(v, "AUTH_ALLOWED_EMAIL_DOMAINS"),
			AdminPromotionCode:  getString(v, "ADMIN_PROMOTION_CODE", ""),
			AdminMaxCount:       getInt(v, "ADMIN_MAX_COUNT", 2),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(getString(v, "STORAGE_BACKEND", StoragePostgres)),
		},
		Objects: ObjectStoreConfig{
			Endpoint:          getString(v, "S3_ENDPOINT", ""),
			AccessKey:         getString(v, "S3_ACCESS_KEY", ""),
			SecretKey:         getString(v, "S3_SECRET_KEY", ""),
			UseSSL:            getBool(v, "S3_USE_SSL", true),
			Bucket:            getString(v, "S3_BUCKET", "site-photos"),
			PublicBaseURL:     getString(v, "S3_PUBLIC_BASE_URL", ""),
			FileStorePath:     getString(v, "FILE_STORE_PATH", "./uploads"),
			FilePublicBaseURL: getString(v, "FILE_PUBLIC_BASE_URL", "http://localhost:8080/uploads"),
		},
		Export: ExportConfig{
			PhotoTimeoutSeconds: getInt(v, "EXPORT_PHOTO_TIMEOUT_SECONDS", 15),
			MinSheetBytes:       getInt(v, "EXPORT_MIN_SHEET_BYTES", 2048),
			PhotoOrigin:         getString(v, "EXPORT_PHOTO_ORIGIN", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PhotoOrigin devuelve Export.PhotoOrigin o, si está vacío, el origen local del servidor HTTP.
func (c *Config) PhotoOrigin() string {
	if c.Export.PhotoOrigin != "" {
		return strings.TrimRight(c.Export.PhotoOrigin, "/")
	}
	host := c.HTTP.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.HTTP.Port))
}

// Validate rechaza combinaciones que impiden arrancar.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es requerido")
	}
	switch c.Storage.Backend {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("config: STORAGE_BACKEND desconocido %q", c.Storage.Backend)
	}
	if c.Auth.AdminMaxCount <= 0 {
		return fmt.Errorf("config: ADMIN_MAX_COUNT debe ser mayor que cero")
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
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
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
	return def
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

// getList separa valores por coma e ignora vacíos.
func getList(v *viper.Viper, key string) []string {
	raw := getString(v, key, "")
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
