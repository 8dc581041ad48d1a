package config

import "time"

// Client configures the API consumer used by ims-cli.
type Client struct {
	BaseURL string `env:"IMS_API_BASE_URL" envDefault:"http://localhost:8000"`
	// Timeout of 0 leaves requests unbounded.
	Timeout        time.Duration `env:"IMS_API_TIMEOUT" envDefault:"0s"`
	DismissAfter   time.Duration `env:"IMS_NOTIFICATION_DISMISS" envDefault:"4s"`
	ReloadOnCommit bool          `env:"IMS_RELOAD_ON_COMMIT" envDefault:"true"`
}
