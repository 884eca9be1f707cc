package config

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:        "info",
			LogDir:          "~/.lingobot/logs",
			DefaultLocale:   "en",
			DefaultLanguage: "en",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			WebhookPath: "/webhook",
		},
		Messenger: MessengerConfig{
			AppSecret:   "${MESSENGER_APP_SECRET}",
			AccessToken: "${MESSENGER_ACCESS_TOKEN}",
			VerifyToken: "${MESSENGER_VERIFY_TOKEN}",
			APIBase:     "https://graph.facebook.com/v21.0",
		},
		Translator: TranslatorConfig{
			BaseURL:        "http://localhost:5000",
			TimeoutSeconds: 15,
		},
		Store: StoreConfig{
			Mode:   "sqlite",
			DBPath: "~/.lingobot/users.db",
		},
		Alerts: AlertsConfig{
			Enabled: false,
		},
	}
}
