package inject

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvOptions derives construction options from the environment, loading the
// given .env files first. Missing files are ignored; with no arguments
// godotenv falls back to ".env" in the working directory.
//
// Recognized variables:
//
//	INJECT_AUTOBIND  bool, default true
//	INJECT_ECHO      bool, default false
func EnvOptions(files ...string) []Option {
	_ = godotenv.Load(files...)

	opts := []Option{WithAutobind(envBool("INJECT_AUTOBIND", true))}
	if envBool("INJECT_ECHO", false) {
		opts = append(opts, WithEcho())
	}
	return opts
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
