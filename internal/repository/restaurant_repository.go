package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/savorytable/restaurant-reservation/internal/model"
)

// RestaurantRepo manages the single-row restaurant profile. Opening
// hours live in a JSON column keyed by lowercase weekday name.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo returns a RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// GetInfo returns the restaurant profile. Returns ErrNotFound when the
// row has not been seeded.
func (r *RestaurantRepo) GetInfo(ctx context.Context) (model.RestaurantInfo, error) {
	const q = `SELECT name, address, phone, email, hours, lat, lng FROM restaurant_info LIMIT 1`
	var info model.RestaurantInfo
	var hoursJSON []byte
	err := r.db.QueryRowContext(ctx, q).Scan(
		&info.Name, &info.Address, &info.Phone, &info.Email,
		&hoursJSON, &info.Coordinates.Lat, &info.Coordinates.Lng)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return info, ErrNotFound
		}
		return info, err
	}
	info.Hours = map[string]string{}
	if len(hoursJSON) > 0 {
		if err := json.Unmarshal(hoursJSON, &info.Hours); err != nil {
			return info, err
		}
	}
	return info, nil
}

// UpdateInfo rewrites the profile row with the given values.
func (r *RestaurantRepo) UpdateInfo(ctx context.Context, info model.RestaurantInfo) error {
	hoursJSON, err := json.Marshal(info.Hours)
	if err != nil {
		return err
	}
	const q = `UPDATE restaurant_info
		SET name = ?, address = ?, phone = ?, email = ?, hours = ?, lat = ?, lng = ?`
	_, err = r.db.ExecContext(ctx, q,
		info.Name, info.Address, info.Phone, info.Email,
		hoursJSON, info.Coordinates.Lat, info.Coordinates.Lng)
	return err
}
