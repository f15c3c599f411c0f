package config

import (
	"encoding/json"
	"os"

	"github.com/vetdesk/vetdesk/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config after parsing; empty fields leave the
// existing value untouched.
type JsonConfig struct {
	ServerBaseURL string `json:"server_base_url"`
	DatabasePath  string `json:"database_path"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flags. When no file is named, nothing happens. Read and
// unmarshal errors panic; there is no sane way to continue with a config
// the user explicitly pointed at but which cannot be read.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
