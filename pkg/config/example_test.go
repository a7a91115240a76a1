package config_test

import (
	"fmt"

	"github.com/wonny/revenue-risk/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	// Access configuration values
	fmt.Printf("Server running on port: %s\n", cfg.Port)
	fmt.Printf("Environment: %s\n", cfg.Env)
	fmt.Printf("Forecast horizon: %d\n", cfg.Pipeline.Horizon)
	fmt.Printf("Rate limit: %.1f req/s\n", cfg.API.RateLimit)
}
