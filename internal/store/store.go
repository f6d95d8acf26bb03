package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Simplici0/dealdesk/internal/pricing"
)

// ErrDealNotFound is returned when no deal has the requested id.
var ErrDealNotFound = errors.New("deal not found")

// Deal is a saved snapshot of a deal's inputs.
type Deal struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Notes         string               `json:"notes"`
	Settings      pricing.DealSettings `json:"settings"`
	Items         []pricing.LineItem   `json:"items"`
	CustomerTotal float64              `json:"customerTotal"`
	CreatedAt     string               `json:"createdAt"`
	UpdatedAt     string               `json:"updatedAt"`
}

// DealSummary is one row of the saved deals list.
type DealSummary struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Mode          pricing.Mode `json:"mode"`
	CustomerTotal float64      `json:"customerTotal"`
	CreatedAt     string       `json:"createdAt"`
}

// Store persists deal snapshots and reads item presets.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveDeal inserts a deal, or replaces it when d.ID is already saved. A
// blank id gets a new one.
func (s *Store) SaveDeal(ctx context.Context, d Deal) (Deal, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Items == nil {
		d.Items = []pricing.LineItem{}
	}

	settingsJSON, err := json.Marshal(d.Settings)
	if err != nil {
		return Deal{}, fmt.Errorf("encode deal settings: %w", err)
	}
	itemsJSON, err := json.Marshal(d.Items)
	if err != nil {
		return Deal{}, fmt.Errorf("encode deal items: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO deals (id, title, notes, mode, settings_json, items_json, customer_total)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			notes = excluded.notes,
			mode = excluded.mode,
			settings_json = excluded.settings_json,
			items_json = excluded.items_json,
			customer_total = excluded.customer_total,
			updated_at = CURRENT_TIMESTAMP
	`, d.ID, strings.TrimSpace(d.Title), strings.TrimSpace(d.Notes), string(d.Settings.Mode), string(settingsJSON), string(itemsJSON), d.CustomerTotal)
	if err != nil {
		return Deal{}, fmt.Errorf("upsert deal: %w", err)
	}

	return s.GetDeal(ctx, d.ID)
}

// GetDeal loads a saved deal.
func (s *Store) GetDeal(ctx context.Context, id string) (Deal, error) {
	var (
		d            Deal
		settingsJSON string
		itemsJSON    string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, notes, settings_json, items_json, customer_total, created_at, updated_at
		FROM deals
		WHERE id = ?
	`, id).Scan(&d.ID, &d.Title, &d.Notes, &settingsJSON, &itemsJSON, &d.CustomerTotal, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Deal{}, ErrDealNotFound
	}
	if err != nil {
		return Deal{}, fmt.Errorf("query deal: %w", err)
	}

	if err := json.Unmarshal([]byte(settingsJSON), &d.Settings); err != nil {
		return Deal{}, fmt.Errorf("decode deal settings: %w", err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &d.Items); err != nil {
		return Deal{}, fmt.Errorf("decode deal items: %w", err)
	}
	return d, nil
}

// ListDeals returns saved deals newest first, filtered by title or notes
// when query is not blank.
func (s *Store) ListDeals(ctx context.Context, query string) ([]DealSummary, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, mode, customer_total, created_at
		FROM deals
		WHERE (? = '' OR title LIKE ? OR notes LIKE ?)
		ORDER BY datetime(created_at) DESC, rowid DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query deals: %w", err)
	}
	defer rows.Close()

	deals := make([]DealSummary, 0)
	for rows.Next() {
		var d DealSummary
		if err := rows.Scan(&d.ID, &d.Title, &d.Mode, &d.CustomerTotal, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		deals = append(deals, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deals: %w", err)
	}

	return deals, nil
}

// DeleteDeal removes a saved deal.
func (s *Store) DeleteDeal(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM deals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	if affected == 0 {
		return ErrDealNotFound
	}
	return nil
}
