package sqlite

import (
	"fmt"
	"time"

	"github.com/gearline/gearline/internal/domain"
	"github.com/gearline/gearline/internal/sim/catalog"
	"github.com/gearline/gearline/internal/sim/process"
)

// ─── Process Instance Repository ────────────────────────────────────────────

// SaveProcesses replaces the persisted instance set with the given one.
// Runs in a single transaction so a crash never leaves a partial set.
func (d *DB) SaveProcesses(list []process.Instance) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM process_instances`); err != nil {
		return err
	}

	now := time.Now().Unix()
	for _, inst := range list {
		_, err := tx.Exec(
			`INSERT INTO process_instances (coord, kind, recipe_key, input, remaining, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			inst.Coord.Key(), string(inst.Kind), inst.Recipe.Key(),
			string(inst.Input), inst.Remaining, now,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadProcesses reads all persisted instances, resolving their recipes
// against the catalog. Rows whose recipe key no longer resolves are
// dropped silently — the catalog is the source of truth.
func (d *DB) LoadProcesses(cat *catalog.Catalog) ([]process.Instance, error) {
	rows, err := d.db.Query(
		`SELECT coord, kind, recipe_key, input, remaining FROM process_instances ORDER BY coord`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []process.Instance
	for rows.Next() {
		var coordKey, kind, recipeKey, input string
		var remaining int
		if err := rows.Scan(&coordKey, &kind, &recipeKey, &input, &remaining); err != nil {
			return nil, err
		}

		coord, err := domain.ParseKey(coordKey)
		if err != nil {
			return nil, fmt.Errorf("process row: %w", err)
		}
		recipe, ok := cat.RecipeFor(domain.ProcessKind(kind), recipeKey)
		if !ok {
			continue
		}
		out = append(out, process.Instance{
			Coord:     coord,
			Kind:      domain.ProcessKind(kind),
			Recipe:    recipe,
			Input:     domain.ItemID(input),
			Remaining: remaining,
		})
	}
	return out, rows.Err()
}
