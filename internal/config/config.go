package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/billcycle/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Proration  ProrationConfig  `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// ProrationConfig controls how billing cycle fractions are computed and cached.
type ProrationConfig struct {
	// CalculatorType selects the proration strategy ("day")
	CalculatorType string `validate:"required"`

	// MemoEnabled turns on memoization of proration results
	MemoEnabled bool

	// MemoTTL is how long a memoized proration result stays valid
	MemoTTL time.Duration
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billcycle")

	// Set up environment variables support
	v.SetEnvPrefix("BILLCYCLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("proration.calculatortype", "day")
	v.SetDefault("proration.memoenabled", true)
	v.SetDefault("proration.memottl", 30*time.Minute)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Proration: ProrationConfig{
			CalculatorType: "day",
			MemoEnabled:    false,
			MemoTTL:        30 * time.Minute,
		},
	}
}
