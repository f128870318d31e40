package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Output format template for track listings
	// Default: "{{.Artist}} - {{.Name}}"
	OutputFormat string

	// Fixed display width for each output line (0 disables padding)
	OutputWidth int

	// Path of the SQLite database written by "library export"
	// Default: ~/.local/share/spotctl/library.db
	ExportDB string

	// Spotify credentials and endpoints
	Spotify SpotifyConfig

	// HTTP behaviour of the API client
	HTTP HTTPConfig
}

// SpotifyConfig holds Spotify specific configuration
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AccessToken  string
	RefreshToken string

	// Endpoint overrides, empty means the public service
	BaseURL     string
	AccountsURL string
}

// HTTPConfig controls timeouts and retries of API requests
type HTTPConfig struct {
	Retries      int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Persistent   bool
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	return LoadFrom(getConfigDir())
}

// LoadFrom reads configuration from config.yaml in dir, then the
// environment. A missing file is not an error.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Set defaults
	v.SetDefault("output_format", "{{.Artist}} - {{.Name}}")
	v.SetDefault("output_width", 0)
	v.SetDefault("export_db", filepath.Join(dataDir(), "library.db"))
	v.SetDefault("spotify.redirect_uri", "http://127.0.0.1:8888/callback")
	v.SetDefault("http.retries", 0)
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.persistent", false)

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Read from environment variables, e.g. SPOTCTL_SPOTIFY_ACCESS_TOKEN
	v.SetEnvPrefix("SPOTCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		OutputFormat: v.GetString("output_format"),
		OutputWidth:  v.GetInt("output_width"),
		ExportDB:     v.GetString("export_db"),
		Spotify: SpotifyConfig{
			ClientID:     v.GetString("spotify.client_id"),
			ClientSecret: v.GetString("spotify.client_secret"),
			RedirectURI:  v.GetString("spotify.redirect_uri"),
			AccessToken:  v.GetString("spotify.access_token"),
			RefreshToken: v.GetString("spotify.refresh_token"),
			BaseURL:      v.GetString("spotify.base_url"),
			AccountsURL:  v.GetString("spotify.accounts_url"),
		},
		HTTP: HTTPConfig{
			Retries:      v.GetInt("http.retries"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			Persistent:   v.GetBool("http.persistent"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "spotctl")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

func dataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "spotctl")
}

// Save writes configuration to file
func (c *Config) Save() error {
	return c.SaveTo(getConfigDir())
}

// SaveTo writes configuration to config.yaml in dir. The file holds
// credentials, so it is only readable by the owner.
func (c *Config) SaveTo(dir string) error {
	v := viper.New()

	// Set config file path
	configFile := filepath.Join(dir, "config.yaml")

	// Set values in viper
	v.Set("output_format", c.OutputFormat)
	v.Set("output_width", c.OutputWidth)
	v.Set("export_db", c.ExportDB)
	v.Set("spotify.client_id", c.Spotify.ClientID)
	v.Set("spotify.client_secret", c.Spotify.ClientSecret)
	v.Set("spotify.redirect_uri", c.Spotify.RedirectURI)
	v.Set("spotify.access_token", c.Spotify.AccessToken)
	v.Set("spotify.refresh_token", c.Spotify.RefreshToken)
	if c.Spotify.BaseURL != "" {
		v.Set("spotify.base_url", c.Spotify.BaseURL)
	}
	if c.Spotify.AccountsURL != "" {
		v.Set("spotify.accounts_url", c.Spotify.AccountsURL)
	}
	v.Set("http.retries", c.HTTP.Retries)
	v.Set("http.read_timeout", c.HTTP.ReadTimeout.String())
	v.Set("http.write_timeout", c.HTTP.WriteTimeout.String())
	v.Set("http.persistent", c.HTTP.Persistent)

	// Write to file
	if err := v.WriteConfigAs(configFile); err != nil {
		return err
	}
	return os.Chmod(configFile, 0600)
}
