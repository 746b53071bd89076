package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"chores-app-go/pkg/logger"
	"github.com/joho/godotenv"
)

const (
	dotenvFilename = ".env"
	envFileKey     = "ENV_FILE"
)

// loadDotEnv fills unset variables from ENV_FILE or the nearest .env above the
// working directory. Real environment variables always win.
func loadDotEnv(log logger.Logger) error {
	path := strings.TrimSpace(os.Getenv(envFileKey))
	if path == "" {
		found, err := findDotEnv(dotenvFilename)
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("dotenv: no file found")
			return nil
		}
		if err != nil {
			return err
		}
		path = found
	}

	loaded, skipped, err := applyDotEnv(path)
	if err != nil {
		return err
	}

	log.Info("dotenv: applied", "path", path, "loaded", loaded, "skipped", skipped)
	return nil
}

func findDotEnv(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func applyDotEnv(path string) (loaded, skipped int, err error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}

	for key, value := range values {
		if _, set := os.LookupEnv(key); set {
			skipped++
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return loaded, skipped, err
		}
		loaded++
	}
	return loaded, skipped, nil
}
