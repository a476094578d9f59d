package config

type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	SSL       bool   `yaml:"ssl"`
}

func loadSMTPConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:      getEnv("EMAIL_HOST", "smtp.gmail.com"),
		Port:      getEnvAsInt("EMAIL_PORT", 587),
		Username:  getEnv("EMAIL_USER", ""),
		Password:  getEnv("EMAIL_PASSWORD", ""),
		FromEmail: getEnv("EMAIL_FROM", "noreply@roadwatch.app"),
		FromName:  getEnv("EMAIL_FROM_NAME", "Admin Dashboard"),
		SSL:       getEnvAsBool("EMAIL_SECURE", false),
	}
}
