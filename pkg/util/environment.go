package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 {
			continue
		}

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentValue returns the trimmed value for key or defaultValue when unset or blank
func GetEnvironmentValue(env map[string]string, key string, defaultValue string) string {
	if value := strings.TrimSpace(env[key]); value != "" {
		return value
	}

	return defaultValue
}
