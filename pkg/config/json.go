package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadJSON unmarshals a JSON file into target.
func LoadJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("unmarshal JSON %s: %w", path, err)
	}
	return nil
}
