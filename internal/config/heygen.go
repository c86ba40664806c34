package config

import (
	"os"
	"sync"
)

type HeyGenConfig struct {
	APIKey  string
	BaseURL string
}

var (
	heyGenConfig *HeyGenConfig
	heyGenOnce   sync.Once
)

func LoadHeyGenConfig() *HeyGenConfig {
	heyGenOnce.Do(func() {
		baseURL := os.Getenv("HEYGEN_BASE_URL")
		if baseURL == "" {
			baseURL = "https://api.heygen.com"
		}
		heyGenConfig = &HeyGenConfig{
			APIKey:  os.Getenv("HEYGEN_API_KEY"),
			BaseURL: baseURL,
		}
	})
	return heyGenConfig
}
