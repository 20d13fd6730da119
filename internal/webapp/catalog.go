package webapp

import (
	"encoding/json"
	"fmt"
	"os"

	"knox-bundles/internal/domain"
)

// LoadCatalog reads the bundle catalog the mini-app offers, grouped by
// network. The file is read once at startup.
func LoadCatalog(path string) (domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bundles file: %w", err)
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing bundles file: %w", err)
	}

	return catalog, nil
}
