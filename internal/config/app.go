package config

import (
	"os"
	"strconv"
)

type ImportConfig struct {
	MaxTextLength   int
	DefaultCategory string
	DefaultTitle    string
}

func LoadImportConfig() *ImportConfig {
	return &ImportConfig{
		MaxTextLength:   getEnvAsInt("IMPORT_MAX_TEXT_LENGTH", 2000),
		DefaultCategory: getEnv("IMPORT_DEFAULT_CATEGORY", "Other"),
		DefaultTitle:    getEnv("IMPORT_DEFAULT_TITLE", "Imported transaction"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
