package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/quantize-tools/quantcfg/internal/qparams"
)

// Save appends a new revision of the named profile and returns its
// revision ID. The configuration is serialized through qparams.ToMap, so
// enumerations are stored as their primitive wire values and the document
// can be decoded again by config.FromJSON.
func (s *Store) Save(ctx context.Context, name string, params *qparams.AdvancedQuantizationParams) (string, error) {
	if name == "" {
		return "", fmt.Errorf("save profile: name must not be empty")
	}
	if params == nil {
		return "", fmt.Errorf("save profile: params must not be nil")
	}

	document, err := marshalDocument(params)
	if err != nil {
		return "", fmt.Errorf("save profile %q: %w", name, err)
	}

	// UUIDv7 revision IDs are unique and time-sortable.
	revision := uuid.Must(uuid.NewV7()).String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save profile %q: %w", name, err)
	}
	defer tx.Rollback()

	// Next per-name sequence number; the UNIQUE(name, seq) constraint
	// rejects racing writers.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO profile_revisions (revision, name, seq, document)
		VALUES (?, ?, (
			SELECT COALESCE(MAX(seq), 0) + 1 FROM profile_revisions WHERE name = ?
		), ?)
	`, revision, name, name, document)
	if err != nil {
		return "", fmt.Errorf("save profile %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save profile %q: %w", name, err)
	}

	return revision, nil
}

// marshalDocument converts the parameter model to JSON TEXT for storage.
// json.Marshal sorts map keys, so output is stable for a given model.
func marshalDocument(params *qparams.AdvancedQuantizationParams) (string, error) {
	data, err := json.Marshal(qparams.ToMap(params))
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return string(data), nil
}
