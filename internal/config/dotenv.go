package config

import (
	"errors"
	"os"

	"github.com/subosito/gotenv"
)

// loadDotEnv exports KEY=VALUE pairs from a dotenv file. Variables already
// present in the environment win, and a missing file is not an error.
func loadDotEnv(path string) error {
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
