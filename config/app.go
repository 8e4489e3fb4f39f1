package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	AdminAddress  string `env:"ADMIN_ADDRESS,required"`
	MintPriceWei  int64  `env:"MINT_PRICE_WEI" default:"10000000000000000"`
	PayoutAPIKey  string `env:"PAYOUT_API_KEY"`
	PayoutBaseURL string `env:"PAYOUT_BASE_URL"`
	Env           string `env:"APP_ENV" default:"dev"`
}
