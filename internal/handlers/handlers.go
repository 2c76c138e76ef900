package handlers

import (
	"database/sql"

	"github.com/01moynul/audiogear-golang/internal/auth"
	"github.com/01moynul/audiogear-golang/internal/models"
)

// Handlers holds the dependencies every handler needs. Nothing is read
// from package-level state.
type Handlers struct {
	DB     *sql.DB
	Tokens *auth.TokenService
}

func New(db *sql.DB, tokens *auth.TokenService) *Handlers {
	return &Handlers{DB: db, Tokens: tokens}
}

// gearScanner matches *sql.Row and *sql.Rows.
type gearScanner interface {
	Scan(dest ...interface{}) error
}

// scanGearItem reads one row of the shared gear column list, converting
// nullable columns into pointers.
func scanGearItem(s gearScanner) (models.GearItem, error) {
	var (
		item        models.GearItem
		rating      sql.NullFloat64
		description sql.NullString
		imageURL    sql.NullString
	)
	err := s.Scan(
		&item.ID, &item.Name, &item.Category, &item.Brand, &item.Price,
		&item.InStock, &rating, &description, &imageURL,
	)
	if err != nil {
		return item, err
	}
	if rating.Valid {
		item.Rating = &rating.Float64
	}
	if description.Valid {
		item.Description = &description.String
	}
	if imageURL.Valid {
		item.ImageURL = &imageURL.String
	}
	return item, nil
}
