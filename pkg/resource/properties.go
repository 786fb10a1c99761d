package resource

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

var (
	properties = viper.New()
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// init loads application properties from YAML
func init() {
	value, ok := os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		value = "configs/application.yml"
	}
	if err := Init(value); err != nil {
		log.Printf("Properties not loaded from %s: %v", value, err)
	}
}

// Init reads the YAML file at filepath and resolves ${ENV:default} placeholders.
// A missing file is not an error: callers fall back to the defaults registered with SetDefault.
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil
		}
		return err
	}

	resolved := make(map[string]any)
	flatten("", v.AllSettings(), resolved)
	for key, value := range resolved {
		properties.Set(key, value)
	}
	return nil
}

// flatten walks the YAML tree and stores dotted keys with resolved values
func flatten(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			if resolved, ok := resolveEnvVariable(v); ok {
				result[fullKey] = resolved
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case []any:
			result[fullKey] = v
		case map[string]any:
			flatten(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable expands a ${NAME:default} placeholder. Plain strings are returned as they are.
func resolveEnvVariable(value string) (string, bool) {
	matches := envPattern.FindStringSubmatch(value)
	if matches == nil {
		return value, true
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue, true
	}
	if len(matches) > 2 && matches[2] != "" {
		return matches[2], true
	}
	return "", false
}

// SetDefault registers a fallback used when the key is absent from the YAML file.
func SetDefault(key string, value any) {
	properties.SetDefault(key, value)
}

func Get(key string) any {
	return properties.Get(key)
}

func GetString(key string) string {
	return properties.GetString(key)
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetInt(key string) int {
	return properties.GetInt(key)
}
