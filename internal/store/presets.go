package store

import (
	"context"
	"fmt"
)

// Preset is a catalog item a seller can drop into a deal.
type Preset struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	TagPrice    float64 `json:"tagPrice"`
	LandingCost float64 `json:"landingCost"`
}

// ListPresets returns the active presets ordered by category and name.
func (s *Store) ListPresets(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, tag_price, landing_cost
		FROM item_presets
		WHERE active = TRUE
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	presets := make([]Preset, 0)
	for rows.Next() {
		var p Preset
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.TagPrice, &p.LandingCost); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presets: %w", err)
	}

	return presets, nil
}
