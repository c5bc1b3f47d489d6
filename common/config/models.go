package config

type GeneralConfig struct {
	BindAddress      string `yaml:"bindAddress"`
	Port             int    `yaml:"port"`
	LogDirectory     string `yaml:"logDirectory"`
	LogColors        bool   `yaml:"logColors"`
	JsonLogs         bool   `yaml:"jsonLogs"`
	LogLevel         string `yaml:"logLevel"`
	TrustAnyForward  bool   `yaml:"trustAnyForwardedAddress"`
	UseForwardedHost bool   `yaml:"useForwardedHost"`
}

type AssetsConfig struct {
	RootDirectory string   `yaml:"rootDirectory"`
	CacheControl  string   `yaml:"cacheControl"`
	Exclude       []string `yaml:"exclude,flow"`
}

type DatastoreConfig struct {
	Type    string            `yaml:"type"`
	Options map[string]string `yaml:"opts,flow"`
}

type AdminAuthConfig struct {
	Enabled      bool   `yaml:"enabled"`
	SharedSecret string `yaml:"sharedSecret"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Enabled           bool    `yaml:"enabled"`
	BurstCount        int     `yaml:"burst"`
}

type MetricsConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BindAddress string `yaml:"bindAddress"`
	Port        int    `yaml:"port"`
}

type SentryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Dsn         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

type MainRepoConfig struct {
	General   GeneralConfig   `yaml:"repo"`
	Assets    AssetsConfig    `yaml:"assets"`
	Datastore DatastoreConfig `yaml:"datastore"`
	AdminAuth AdminAuthConfig `yaml:"adminAuth"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Sentry    SentryConfig    `yaml:"sentry"`
}
