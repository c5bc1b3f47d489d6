package config

const DefaultCacheControl = "max-age=3600"

func NewDefaultMainConfig() MainRepoConfig {
	return MainRepoConfig{
		General: GeneralConfig{
			BindAddress:      "127.0.0.1",
			Port:             8000,
			LogDirectory:     "logs",
			LogColors:        false,
			JsonLogs:         false,
			LogLevel:         "info",
			TrustAnyForward:  false,
			UseForwardedHost: true,
		},
		Assets: AssetsConfig{
			RootDirectory: "public",
			CacheControl:  DefaultCacheControl,
			Exclude:       []string{},
		},
		Datastore: DatastoreConfig{
			Type: "file",
			Options: map[string]string{
				"path": "./uploads",
			},
		},
		AdminAuth: AdminAuthConfig{
			Enabled:      true,
			SharedSecret: "ReplaceMe",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 5,
			BurstCount:        10,
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			BindAddress: "localhost",
			Port:        9000,
		},
		Sentry: SentryConfig{
			Enabled:     false,
			Dsn:         "not supplied",
			Environment: "",
			Debug:       false,
		},
	}
}
