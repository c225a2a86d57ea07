package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/seatharmony/seatharmony/internal/model"
)

// VenueSource abstracts where venue layouts come from.  The handler layer
// only needs listing and lookup; both the MySQL repository and the built-in
// catalog satisfy it.
type VenueSource interface {
	List(ctx context.Context) ([]model.VenueLayout, error)
	GetByID(ctx context.Context, id string) (model.VenueLayout, error)
}

// VenueRepo serves venue layouts from MySQL.  Venues are stored as JSON
// documents keyed by id; the built-in catalog seeds the table so a fresh
// database starts with the stock venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// EnsureSchema creates the venues table if it does not exist.
func (r *VenueRepo) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS venues (
	    id         VARCHAR(64) PRIMARY KEY,
	    position   INT NOT NULL,
	    doc        JSON NOT NULL,
	    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Seed inserts the given venues, skipping ids that already exist.  The
// position column preserves catalog order so List returns venues the way
// the selection page presents them.
func (r *VenueRepo) Seed(ctx context.Context, venues []model.VenueLayout) error {
	const q = `INSERT IGNORE INTO venues (id, position, doc) VALUES (?, ?, ?)`
	for i, v := range venues {
		doc, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if _, err := r.db.ExecContext(ctx, q, v.ID, i, doc); err != nil {
			return err
		}
	}
	return nil
}

// List returns all venues in catalog order.
func (r *VenueRepo) List(ctx context.Context) ([]model.VenueLayout, error) {
	const q = `SELECT doc FROM venues ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []model.VenueLayout
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var v model.VenueLayout
		if err := json.Unmarshal(doc, &v); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// GetByID fetches a single venue.
func (r *VenueRepo) GetByID(ctx context.Context, id string) (model.VenueLayout, error) {
	const q = `SELECT doc FROM venues WHERE id = ?`
	var doc []byte
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.VenueLayout{}, ErrVenueNotFound
		}
		return model.VenueLayout{}, err
	}
	var v model.VenueLayout
	if err := json.Unmarshal(doc, &v); err != nil {
		return model.VenueLayout{}, err
	}
	return v, nil
}

// CatalogSource serves the built-in venue catalog.  Used when no database
// is configured and in tests.
type CatalogSource struct{}

func (CatalogSource) List(_ context.Context) ([]model.VenueLayout, error) {
	return model.VenueLayouts, nil
}

func (CatalogSource) GetByID(_ context.Context, id string) (model.VenueLayout, error) {
	v, ok := model.VenueByID(id)
	if !ok {
		return model.VenueLayout{}, ErrVenueNotFound
	}
	return v, nil
}
