package config

import "time"

type JWTConfig struct {
	Secret     string        `koanf:"secret"`
	Expiration time.Duration `koanf:"expiration"`
}

// SigningKey returns the HMAC key for issuing and verifying tokens.
func (j JWTConfig) SigningKey() []byte {
	return []byte(j.Secret)
}
