package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quantize-tools/quantcfg/internal/config"
	"github.com/quantize-tools/quantcfg/internal/qparams"
)

// Revision is one stored profile revision.
type Revision struct {
	// ID is the UUIDv7 revision identifier.
	ID string

	// Name is the profile name.
	Name string

	// Seq is the per-name revision number, starting at 1.
	Seq int64

	// Params is the decoded configuration.
	Params *qparams.AdvancedQuantizationParams
}

// Info summarizes one profile name.
type Info struct {
	Name      string
	Revisions int64
}

// Get returns the latest revision of the named profile.
// Returns ErrNotFound if the name has no revisions.
func (s *Store) Get(ctx context.Context, name string) (*Revision, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT revision, name, seq, document
		FROM profile_revisions
		WHERE name = ?
		ORDER BY seq DESC
		LIMIT 1
	`, name)

	return scanRevision(row, name)
}

// List returns a summary of every stored profile, ordered by name for
// deterministic output.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, COUNT(*)
		FROM profile_revisions
		GROUP BY name
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.Name, &info.Revisions); err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	// Return empty slice instead of nil
	if infos == nil {
		infos = []Info{}
	}
	return infos, nil
}

func scanRevision(row *sql.Row, name string) (*Revision, error) {
	var rev Revision
	var document string
	err := row.Scan(&rev.ID, &rev.Name, &rev.Seq, &document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read profile %q: %w", name, err)
	}

	params, err := config.FromJSON([]byte(document))
	if err != nil {
		return nil, fmt.Errorf("decode profile %q: %w", name, err)
	}
	rev.Params = params

	return &rev, nil
}
