package config

type HTTP struct {
	Port           uint32   `env:"HTTP_PORT" envDefault:"8000"`
	Swagger        bool     `env:"HTTP_SWAGGER" envDefault:"true"`
	AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	// RateLimit is the number of requests allowed per client IP per minute. 0 disables it.
	RateLimit int `env:"HTTP_RATE_LIMIT" envDefault:"600"`
}
