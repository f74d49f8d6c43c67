package conftools

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Number of characters in a redacted value, including the visible suffix.
	redactedWidth = 20
	// Number of trailing characters left visible in a redacted value.
	redactedVisible = 4
	redactionMask   = '*'
)

func decoderHook(dc *mapstructure.DecoderConfig) {
	dc.TagName = "json"
	dc.ErrorUnused = true
}

// Initialize sets up viper to read configuration from the environment and
// from an optional configuration file, both named after the application.
//
// Environment variables are prefixed with the upper-cased application name,
// and dashes and dots in configuration keys are replaced with underscores,
// e.g. "app-id" is read from OPSDEPLOY_APP_ID.
func Initialize(name string) {
	viper.SetEnvPrefix(name)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.SetConfigName(name)
	viper.AddConfigPath(".")
}

// Load parses command-line flags and merges them with environment variables
// and the configuration file into cfg.
// Values are resolved with the following precedence: flags > environment variables > configuration file > defaults.
func Load(cfg interface{}) error {
	var err error

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	flag.Parse()

	err = viper.BindPFlags(flag.CommandLine)
	if err != nil {
		return err
	}

	err = viper.Unmarshal(cfg, decoderHook)
	if err != nil {
		return err
	}

	return nil
}

// Return a human-readable printout of all configuration options, with secret values redacted.
func Format(secretKeys []string) []string {
	secret := func(key string) bool {
		for _, secretKey := range secretKeys {
			if secretKey == key {
				return true
			}
		}
		return false
	}

	var keys sort.StringSlice = viper.AllKeys()

	printed := make([]string, 0)

	keys.Sort()
	for _, key := range keys {
		if secret(key) {
			printed = append(printed, fmt.Sprintf("%s: %s", key, Redact(viper.GetString(key))))
		} else {
			printed = append(printed, fmt.Sprintf("%s: %v", key, viper.Get(key)))
		}
	}

	return printed
}

// Redact masks a secret value so that only its last four characters remain visible.
// The result is always twenty characters wide. Values too short to reveal
// anything safely are masked entirely.
func Redact(value string) string {
	if len(value) < redactedVisible {
		return strings.Repeat(string(redactionMask), redactedWidth)
	}
	suffix := value[len(value)-redactedVisible:]
	return strings.Repeat(string(redactionMask), redactedWidth-redactedVisible) + suffix
}
