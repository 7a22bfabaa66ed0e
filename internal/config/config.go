// Package config defines the kiosk configuration.
//
// Values come from SPARES_* environment variables (viper), with defaults
// declared on the struct tags (creasty/defaults). Nested keys use
// underscores: SPARES_DATABASE_PATH, SPARES_EXPORT_SUBDIR, and so on.
//
//	┌──────────────────────────┬───────────────────────┬─────────────────────────────────┐
//	│ Key                      │ Default               │ Description                     │
//	├──────────────────────────┼───────────────────────┼─────────────────────────────────┤
//	│ env                      │ "prod"                │ "dev" or "prod"                 │
//	│ http_port                │ 8000                  │ HTTP listen port                │
//	│ log_level                │ "info"                │ zap log level                   │
//	│ database.path            │ "app.db"              │ sqlite file path                │
//	│ export.dev_local_root    │ "./spares_exports_dev"│ export root in dev              │
//	│ export.prod_local_root   │ "/home/pi/exports"    │ fallback export root in prod    │
//	│ export.subdir            │ "spares_exports"      │ subfolder inside the root       │
//	│ export.clear_wishlist    │ true                  │ clear wishlist after export     │
//	│ export.clear_rob         │ true                  │ clear ROB after export          │
//	│ export.clear_locations   │ false                 │ clear overrides after export    │
//	└──────────────────────────┴───────────────────────┴─────────────────────────────────┘
//
// In prod, exports probe for removable media under export.usb_roots
// (/media/pi then /media) and fall back to prod_local_root; dev always
// exports locally.
package config

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

type Configuration struct {
	Env      string   `mapstructure:"env" default:"prod"`
	HTTPPort int      `mapstructure:"http_port" default:"8000"`
	LogLevel string   `mapstructure:"log_level" default:"info"`
	Database Database `mapstructure:"database"`
	Export   Export   `mapstructure:"export"`
}

type Database struct {
	Path string `mapstructure:"path" default:"app.db"`
}

type Export struct {
	DevLocalRoot   string   `mapstructure:"dev_local_root" default:"./spares_exports_dev"`
	ProdLocalRoot  string   `mapstructure:"prod_local_root" default:"/home/pi/exports"`
	Subdir         string   `mapstructure:"subdir" default:"spares_exports"`
	USBRoots       []string `mapstructure:"usb_roots" default:"[\"/media/pi\",\"/media\"]"`
	ClearWishlist  bool     `mapstructure:"clear_wishlist" default:"true"`
	ClearRob       bool     `mapstructure:"clear_rob" default:"true"`
	ClearLocations bool     `mapstructure:"clear_locations" default:"false"`
}

// keys lists every configuration key so AutomaticEnv picks up variables
// that were never set through any other source.
var keys = []string{
	"env", "http_port", "log_level",
	"database.path",
	"export.dev_local_root", "export.prod_local_root", "export.subdir",
	"export.usb_roots",
	"export.clear_wishlist", "export.clear_rob", "export.clear_locations",
}

// Load builds the configuration from defaults overlaid with SPARES_*
// environment variables.
func Load() (*Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix("SPARES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply configuration defaults: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env != EnvDev {
		cfg.Env = EnvProd
	}
	return cfg, nil
}

// IsDev reports whether the kiosk runs in development mode.
func (c *Configuration) IsDev() bool {
	return c.Env == EnvDev
}
