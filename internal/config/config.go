package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the beacon service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP server.
// - Capability: Settings of the geolocation capability.
// - Geocoder: Settings of the address geocoder used for reminders.
// - AlertRadiusKm: Distance to a reminder below which an alert is raised.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env           string           `yaml:"env"`             // Env is the current environment: local, development, production.
	Port          int              `yaml:"port"`            // Port is the HTTP server port.
	Capability    CapabilityConfig `yaml:"capability"`      // Capability holds the geolocation capability settings.
	Geocoder      GeocoderConfig   `yaml:"geocoder"`        // Geocoder holds the address geocoder settings.
	AlertRadiusKm float64          `yaml:"alert_radius_km"` // AlertRadiusKm is the geofence alert radius.
	Database      PostgresConfig   `yaml:"postgres"`        // Database holds the postgres database configuration.
}

// CapabilityConfig selects and tunes the geolocation capability.
type CapabilityConfig struct {
	Type         string        `yaml:"type"`       // Type is one of none, static, ipapi, google, maxmind.
	APIKey       string        `yaml:"api_key"`    // APIKey for the Google Geolocation API.
	RateLimit    int           `yaml:"rate_limit"` // RateLimit of requests to the capability.
	Timeout      time.Duration `yaml:"timeout"`    // Timeout is the host policy timeout for one request.
	Latitude     *float64      `yaml:"latitude"`   // Latitude of the static position.
	Longitude    *float64      `yaml:"longitude"`  // Longitude of the static position.
	DatabasePath string        `yaml:"geoip_db"`   // DatabasePath of the GeoIP city database.
	PublicIP     string        `yaml:"public_ip"`  // PublicIP to locate with ip-api or the GeoIP database.
}

// GeocoderConfig selects the address geocoder.
type GeocoderConfig struct {
	Type         string `yaml:"type"`          // Type is nominatim or google.
	APIKey       string `yaml:"api_key"`       // APIKey for the Google Geocoding API.
	RegionSuffix string `yaml:"region_suffix"` // RegionSuffix is appended to every address.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// envBindings maps configuration keys to environment variables.
var envBindings = map[string]string{
	"env":                    "BEACON_ENV",
	"port":                   "BEACON_PORT",
	"capability.type":        "BEACON_CAPABILITY_TYPE",
	"capability.api_key":     "BEACON_CAPABILITY_KEY",
	"capability.rate_limit":  "BEACON_CAPABILITY_RATE_LIMIT",
	"capability.timeout":     "BEACON_TIMEOUT",
	"capability.latitude":    "BEACON_STATIC_LATITUDE",
	"capability.longitude":   "BEACON_STATIC_LONGITUDE",
	"capability.geoip_db":    "BEACON_GEOIP_DATABASE",
	"capability.public_ip":   "BEACON_PUBLIC_IP",
	"geocoder.type":          "BEACON_GEOCODER_TYPE",
	"geocoder.api_key":       "BEACON_GEOCODER_KEY",
	"geocoder.region_suffix": "BEACON_REGION_SUFFIX",
	"alert_radius_km":        "BEACON_ALERT_RADIUS_KM",
	"postgres.host":          "DB_HOST",
	"postgres.port":          "DB_PORT",
	"postgres.user":          "DB_USERNAME",
	"postgres.password":      "DB_PASSWORD",
	"postgres.db_name":       "DB_NAME",
}

// MustLoad loads the configuration from the environment, an optional .env file
// and the optional YAML file named by BEACON_CONFIG_FILE. It panics on invalid values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("capability.type", "ipapi")
	v.SetDefault("capability.rate_limit", "0")
	v.SetDefault("capability.timeout", "10s")
	v.SetDefault("geocoder.type", "nominatim")
	v.SetDefault("alert_radius_km", "1.0")
	v.SetDefault("postgres.port", "5432")

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	_ = v.BindEnv("config_file", "BEACON_CONFIG_FILE")
	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port for server from configuration")
	}

	timeout, err := time.ParseDuration(v.GetString("capability.timeout"))
	if err != nil {
		panic("failed to parse capability timeout from configuration")
	}

	rateLimit, err := strconv.Atoi(v.GetString("capability.rate_limit"))
	if err != nil {
		panic("failed to parse capability rate limit from configuration, must be an integer")
	}

	radius, err := strconv.ParseFloat(v.GetString("alert_radius_km"), 64)
	if err != nil {
		panic("failed to parse alert radius from configuration")
	}

	return &Config{
		Env:  v.GetString("env"),
		Port: port,
		Capability: CapabilityConfig{
			Type:         v.GetString("capability.type"),
			APIKey:       v.GetString("capability.api_key"),
			RateLimit:    rateLimit,
			Timeout:      timeout,
			Latitude:     optionalFloat(v, "capability.latitude", "failed to parse static latitude from configuration"),
			Longitude:    optionalFloat(v, "capability.longitude", "failed to parse static longitude from configuration"),
			DatabasePath: v.GetString("capability.geoip_db"),
			PublicIP:     v.GetString("capability.public_ip"),
		},
		Geocoder: GeocoderConfig{
			Type:         v.GetString("geocoder.type"),
			APIKey:       v.GetString("geocoder.api_key"),
			RegionSuffix: v.GetString("geocoder.region_suffix"),
		},
		AlertRadiusKm: radius,
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
	}
}

func optionalFloat(v *viper.Viper, key, panicMsg string) *float64 {
	raw := v.GetString(key)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		panic(panicMsg)
	}

	return &value
}
