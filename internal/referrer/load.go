package referrer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTables reads replacement pattern tables from a YAML file. All three
// lists must be present; ordering in the file is preserved.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read pattern tables: %w", err)
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("parse pattern tables: %w", err)
	}

	if len(t.SearchEngines) == 0 {
		return Tables{}, fmt.Errorf("pattern tables: search_engines is empty")
	}
	if len(t.QueryKeys) == 0 {
		return Tables{}, fmt.Errorf("pattern tables: query_keys is empty")
	}
	return t, nil
}
