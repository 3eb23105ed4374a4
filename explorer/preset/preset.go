// Package preset persists named filter design snapshots in SQLite so a
// session's parameters and pole/zero state can be saved and reloaded.
package preset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JWKennington/app-dsp-filter-design/dsp/filter/design"
	"github.com/JWKennington/app-dsp-filter-design/dsp/zpk"
)

// ErrNotFound is returned when no preset exists under the given name.
var ErrNotFound = errors.New("preset: not found")

// Preset is one named snapshot of filter parameters and state.
type Preset struct {
	Name      string        `json:"name"`
	Params    design.Params `json:"params"`
	State     zpk.State     `json:"state"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Store keeps presets in a SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS presets (
	name TEXT PRIMARY KEY,
	params_json TEXT NOT NULL,
	state_json TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Open creates or opens the preset database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("preset: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("preset: open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preset: create table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the preset under its name.
func (s *Store) Save(ctx context.Context, p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset: empty name")
	}

	params, err := json.Marshal(p.Params)
	if err != nil {
		return fmt.Errorf("preset: encode params: %w", err)
	}

	state, err := json.Marshal(p.State)
	if err != nil {
		return fmt.Errorf("preset: encode state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO presets (name, params_json, state_json, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			params_json = excluded.params_json,
			state_json = excluded.state_json,
			updated_at = CURRENT_TIMESTAMP`,
		p.Name, string(params), string(state))
	if err != nil {
		return fmt.Errorf("preset: save %q: %w", p.Name, err)
	}

	return nil
}

// Load fetches one preset by name.
func (s *Store) Load(ctx context.Context, name string) (Preset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, params_json, state_json, updated_at
		FROM presets WHERE name = ?`, name)

	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return p, err
}

// List returns all presets ordered by name.
func (s *Store) List(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, params_json, state_json, updated_at
		FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("preset: list: %w", err)
	}
	defer rows.Close()

	var out []Preset

	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("preset: list: %w", err)
	}

	return out, nil
}

// Delete removes the preset by name, reporting ErrNotFound when absent.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("preset: delete %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("preset: delete %q: %w", name, err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (Preset, error) {
	var (
		p      Preset
		params string
		state  string
	)

	if err := row.Scan(&p.Name, &params, &state, &p.UpdatedAt); err != nil {
		return Preset{}, err
	}

	if err := json.Unmarshal([]byte(params), &p.Params); err != nil {
		return Preset{}, fmt.Errorf("preset: decode params for %q: %w", p.Name, err)
	}

	if err := json.Unmarshal([]byte(state), &p.State); err != nil {
		return Preset{}, fmt.Errorf("preset: decode state for %q: %w", p.Name, err)
	}

	return p, nil
}
