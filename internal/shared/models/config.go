package models

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type RabbitMQConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

type HTTPConfig struct {
	Port string
}

type AuthConfig struct {
	JWTSecret string
}

type PushConfig struct {
	Queue         string
	ReminderDelay string
}

type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Push     PushConfig
}
