package seed

import (
	"context"
	"database/sql"
	"fmt"
)

type preset struct {
	name        string
	category    string
	tagPrice    float64
	landingCost float64
}

var defaultPresets = []preset{
	{name: "3-Seat Sofa", category: "living", tagPrice: 1899, landingCost: 640},
	{name: "Loveseat", category: "living", tagPrice: 1499, landingCost: 505},
	{name: "5-Piece Sectional", category: "living", tagPrice: 3999, landingCost: 1380},
	{name: "Power Recliner", category: "living", tagPrice: 1299, landingCost: 455},
	{name: "Queen Bed Set", category: "bedroom", tagPrice: 2499, landingCost: 870},
	{name: "Queen Mattress", category: "bedroom", tagPrice: 1199, landingCost: 360},
	{name: "Dining Table + 4 Chairs", category: "dining", tagPrice: 1799, landingCost: 615},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts the default item presets that are missing. Running it again
// changes nothing.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, p := range defaultPresets {
		if err := ensurePreset(ctx, tx, p, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensurePreset(ctx context.Context, tx *sql.Tx, p preset, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM item_presets WHERE name = ? LIMIT 1)`, p.name).Scan(&exists); err != nil {
		return fmt.Errorf("check preset %q existence: %w", p.name, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO item_presets (name, category, tag_price, landing_cost, active)
		VALUES (?, ?, ?, ?, ?)
	`, p.name, p.category, p.tagPrice, p.landingCost, true); err != nil {
		return fmt.Errorf("insert preset %q: %w", p.name, err)
	}
	stats.Inserts++
	return nil
}
