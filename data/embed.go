package data

import (
	_ "embed"
)

// SeedCatalog is the starter product catalog loaded by `portalctl seed` and SEED_CATALOG=true
//
//go:embed seed/catalog.yaml
var SeedCatalog []byte
