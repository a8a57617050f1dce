package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Auth      AuthConfig
	Invite    InviteConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env             string // development, staging, production
	Name            string
	DefaultTimezone string // zona IANA usada cuando el tenant no define una
	AutoMigrate     bool
}

// IsProduction indica si la app corre en producción.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
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
	MaxConns    int32
	MinConns    int32
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

// TTL duración del token de sesión.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.Expiration) * time.Minute
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

// AuthConfig cookie de sesión y fallback de desarrollo.
type AuthConfig struct {
	CookieName string
	// DevEmailFallback habilita la búsqueda de usuario solo por email (cross-tenant).
	// Nunca se acepta con APP_ENV=production.
	DevEmailFallback bool
}

// InviteConfig tokens de invitación.
type InviteConfig struct {
	TTLHours int
	BaseURL  string
}

// TTL duración de un token de invitación.
func (c InviteConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// RateLimitConfig límite de intentos de login por IP.
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

// LogConfig nivel de log.
type LogConfig struct {
	Level string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
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
			Env:             getString(v, "APP_ENV", "development"),
			Name:            getString(v, "APP_NAME", "ordo-api"),
			DefaultTimezone: getString(v, "DEFAULT_TIMEZONE", "America/Sao_Paulo"),
			AutoMigrate:     getBool(v, "DB_AUTO_MIGRATE", false),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "ordo"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    int32(getInt(v, "DB_MAX_CONNS", 20)),
			MinConns:    int32(getInt(v, "DB_MIN_CONNS", 2)),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 7*24*60),
			Issuer:     getString(v, "JWT_ISSUER", "ordo-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Auth: AuthConfig{
			CookieName:       getString(v, "AUTH_COOKIE_NAME", "auth-token"),
			DevEmailFallback: getBool(v, "AUTH_DEV_EMAIL_FALLBACK", false),
		},
		Invite: InviteConfig{
			TTLHours: getInt(v, "INVITE_TTL_HOURS", 48),
			BaseURL:  strings.TrimRight(getString(v, "INVITE_BASE_URL", "http://localhost:3000"), "/"),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getInt(v, "LOGIN_RATE_PER_MINUTE", 5),
			LoginBurst:     getInt(v, "LOGIN_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza combinaciones inseguras.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET es obligatorio")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	if c.Auth.DevEmailFallback && c.App.IsProduction() {
		return errors.New("config: AUTH_DEV_EMAIL_FALLBACK no puede activarse en producción")
	}
	if c.Invite.TTLHours <= 0 {
		return errors.New("config: INVITE_TTL_HOURS debe ser positivo")
	}
	if _, err := time.LoadLocation(c.App.DefaultTimezone); err != nil {
		return fmt.Errorf("config: DEFAULT_TIMEZONE inválida: %w", err)
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(v.GetString(key))
	if err != nil {
		return def
	}
	return b
}
