package config

type SMSConfig struct {
	Provider string          `yaml:"provider"`
	Twilio   *TwilioConfig   `yaml:"twilio"`
	Fast2SMS *Fast2SMSConfig `yaml:"fast2sms"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type Fast2SMSConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	SenderID string `yaml:"sender_id"`
}

func loadSMSConfig() *SMSConfig {
	return &SMSConfig{
		Provider: getEnv("SMS_PROVIDER", "fast2sms"),
		Twilio: &TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
		},
		Fast2SMS: &Fast2SMSConfig{
			Endpoint: getEnv("FAST2SMS_URL", "https://www.fast2sms.com/dev/bulkV2"),
			APIKey:   getEnv("FAST2SMS_API_KEY", ""),
			SenderID: getEnv("FAST2SMS_SENDER_ID", "FSTSMS"),
		},
	}
}
