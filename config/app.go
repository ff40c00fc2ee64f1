package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Env         string `env:"APP_ENV" default:"dev"`

	// SSLCommerz sandbox credentials plus the public base URL the gateway
	// calls back to (success/fail/cancel).
	StoreID       string `env:"SSLC_STORE_ID,required"`
	StorePassword string `env:"SSLC_STORE_PASSWORD,required"`
	BaseURL       string `env:"APP_BASE_URL" default:"http://localhost:8080"`
}
