package boltstore

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/lucafour/pizzeria/errors"
	"github.com/lucafour/pizzeria/storage"
)

// ErrUnsupportedVersion indicates a persisted section whose schema
// version has no decode or migration path. Callers discard the
// section and continue with defaults.
var ErrUnsupportedVersion = apperrors.New(apperrors.CodeStateVersion, "persisted section version is unsupported")

// migration upgrades a section payload by exactly one schema version.
type migration func(payload []byte) ([]byte, error)

// migrations maps section name and source version to the upgrade for
// version+1. The chain runs until the payload reaches SchemaVersion.
// No upgrades exist yet at version 1.
var migrations = map[string]map[int]migration{}

// versionProbe reads only the schema version of a section payload.
type versionProbe struct {
	SchemaVersion int `json:"schema_version"`
}

// migrateSection upgrades older payloads in memory before decode.
// Newer or unmigratable versions report ErrUnsupportedVersion;
// payloads that cannot be probed or upgraded report a decode failure.
func migrateSection(name string, payload []byte) ([]byte, error) {
	var probe versionProbe
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStateDecode,
			fmt.Sprintf("probe %s section version", name), err)
	}

	version := probe.SchemaVersion
	if version > storage.SchemaVersion {
		return nil, apperrors.WithMetadata(apperrors.CodeStateVersion,
			"persisted section version is unsupported",
			map[string]string{"section": name, "version": fmt.Sprintf("%d", version)})
	}

	for version < storage.SchemaVersion {
		step, ok := migrations[name][version]
		if !ok {
			return nil, apperrors.WithMetadata(apperrors.CodeStateVersion,
				"persisted section version is unsupported",
				map[string]string{"section": name, "version": fmt.Sprintf("%d", version)})
		}
		upgraded, err := step(payload)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeStateDecode,
				fmt.Sprintf("migrate %s section from version %d", name, version), err)
		}
		payload = upgraded
		version++
	}
	return payload, nil
}
