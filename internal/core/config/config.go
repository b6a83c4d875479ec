package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Cache holds the parcel lookup cache configuration.
	Cache CacheConfig `mapstructure:",squash"`

	// Carriers holds per-carrier endpoints and credentials.
	Carriers CarriersConfig `mapstructure:",squash"`

	// Proxy holds the upstream proxy used by browser-driven adapters.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// CacheConfig holds the Redis lookup cache settings.
type CacheConfig struct {
	// Enabled turns the lookup cache on. Lookups go straight to the carrier
	// when disabled.
	Enabled bool `mapstructure:"CACHE_ENABLED" default:"false"`
	// RedisURL is the Redis connection URL.
	RedisURL string `mapstructure:"CACHE_REDIS_URL" default:"redis://localhost:6379/0"`
	// TTLSeconds is how long a successful lookup stays cached.
	TTLSeconds int `mapstructure:"CACHE_TTL_SECONDS" default:"300"`
}

// CarriersConfig holds per-carrier base URLs and credentials. Base URLs
// default to the production endpoints; tests point them at fixture servers.
type CarriersConfig struct {
	// DHLBaseURL is the DHL Unified Tracking API base URL.
	DHLBaseURL string `mapstructure:"CARRIER_DHL_URL" default:"https://api-eu.dhl.com"`
	// DHLAPIKey authenticates against the DHL tracking API. Free keys come
	// from developer.dhl.com.
	DHLAPIKey string `mapstructure:"CARRIER_DHL_API_KEY" required:"true"`
	// GLSBaseURL is the GLS Group tracking base URL.
	GLSBaseURL string `mapstructure:"CARRIER_GLS_URL" default:"https://gls-group.com/app/service/open/rest/GROUP"`
	// GLSLocale is the locale path segment for GLS responses.
	GLSLocale string `mapstructure:"CARRIER_GLS_LOCALE" default:"en"`
	// DPDBaseURL is the DPD parcel life cycle base URL.
	DPDBaseURL string `mapstructure:"CARRIER_DPD_URL" default:"https://tracking.dpd.de"`
	// EvriBaseURL is the Evri parcel API base URL.
	EvriBaseURL string `mapstructure:"CARRIER_EVRI_URL" default:"https://api.evri.com"`
	// AnPostBaseURL is the An Post tracking base URL.
	AnPostBaseURL string `mapstructure:"CARRIER_ANPOST_URL" default:"https://api.anpost.com"`
	// PacketaBaseURL is the Packeta tracking base URL.
	PacketaBaseURL string `mapstructure:"CARRIER_PACKETA_URL" default:"https://api.packeta.com"`
	// PacketaAPIKey is the Packeta API key embedded in the request path.
	PacketaAPIKey string `mapstructure:"CARRIER_PACKETA_API_KEY"`
	// PocztaPolskaBaseURL is the Poczta Polska tracking base URL.
	PocztaPolskaBaseURL string `mapstructure:"CARRIER_POCZTA_POLSKA_URL" default:"https://uss.poczta-polska.pl"`
	// SamedayBaseURL is the Sameday public API base URL.
	SamedayBaseURL string `mapstructure:"CARRIER_SAMEDAY_URL" default:"https://api.sameday.ro"`
	// NovaPoshtaEndpoint is the Nova Poshta JSON-RPC endpoint.
	NovaPoshtaEndpoint string `mapstructure:"CARRIER_NOVA_POSHTA_URL" default:"https://api.novaposhta.ua/v2.0/json/"`
	// NovaPoshtaAPIKey is sent inside the JSON-RPC envelope.
	NovaPoshtaAPIKey string `mapstructure:"CARRIER_NOVA_POSHTA_API_KEY"`
	// UkrposhtaBaseURL is the Ukrposhta status tracking base URL.
	UkrposhtaBaseURL string `mapstructure:"CARRIER_UKRPOSHTA_URL" default:"https://www.ukrposhta.ua/status-tracking/0.0.1"`
	// UkrposhtaToken is the Ukrposhta bearer token.
	UkrposhtaToken string `mapstructure:"CARRIER_UKRPOSHTA_TOKEN"`
	// MagyarPostaBaseURL is the Magyar Posta tracking base URL.
	MagyarPostaBaseURL string `mapstructure:"CARRIER_MAGYAR_POSTA_URL" default:"https://posta.hu"`
	// PosteItalianePageURL is the Poste Italiane tracking page, with a %s
	// placeholder for the tracking ID. This carrier is scraped, not called.
	PosteItalianePageURL string `mapstructure:"CARRIER_POSTE_ITALIANE_URL" default:"https://www.poste.it/cerca/index.html#/risultati-spedizioni/%s"`
}

// ProxyConfig holds the upstream proxy for browser-driven adapters.
type ProxyConfig struct {
	// Enabled turns proxying on for scraping adapters.
	Enabled bool `mapstructure:"PROXY_ENABLED" default:"false"`
	// Hostname is the upstream proxy host.
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	// Port is the upstream proxy port.
	Port int `mapstructure:"PROXY_PORT"`
	// Username authenticates against the upstream proxy.
	Username string `mapstructure:"PROXY_USERNAME"`
	// Password authenticates against the upstream proxy.
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields, binds env keys and sets
// default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks that fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
