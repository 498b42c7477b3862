package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"zappayBack/internal/models"
)

// UtilityRepository reads the utilities reference table. Utilities are
// never written by this service.
type UtilityRepository struct {
	DB *sql.DB
}

func NewUtilityRepository(db *sql.DB) *UtilityRepository { return &UtilityRepository{DB: db} }

// GetUtilityByID fetches one utility with its parsed field schema.
func (r *UtilityRepository) GetUtilityByID(ctx context.Context, id int64) (models.Utility, error) {
	const q = `SELECT id, name, bank_account, fields_description FROM utilities WHERE id = ?`
	var (
		u       models.Utility
		rawJSON []byte
	)
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Name, &u.BankAccount, &rawJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Utility{}, models.ErrNoRecord
	}
	if err != nil {
		return models.Utility{}, err
	}
	if err := json.Unmarshal(rawJSON, &u.Fields); err != nil {
		return models.Utility{}, fmt.Errorf("utility %d fields description: %w", id, err)
	}
	return u, nil
}

// AllAlphabetical lists utilities ordered by display name.
func (r *UtilityRepository) AllAlphabetical(ctx context.Context) ([]models.Utility, error) {
	const q = `SELECT id, name, bank_account, fields_description FROM utilities ORDER BY name ASC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var utilities []models.Utility
	for rows.Next() {
		var (
			u       models.Utility
			rawJSON []byte
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.BankAccount, &rawJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawJSON, &u.Fields); err != nil {
			return nil, fmt.Errorf("utility %d fields description: %w", u.ID, err)
		}
		utilities = append(utilities, u)
	}
	return utilities, rows.Err()
}
