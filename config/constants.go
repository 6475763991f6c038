package config

const (
	DefaultD1BaseURL string = "https://api.cloudflare.com/client/v4"

	ErrEnvNotFound string = "No .env file found"
)
