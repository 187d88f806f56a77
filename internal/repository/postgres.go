package repository

import (
	"context"
	"fmt"
	"strings"

	"place-resolver/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the spatial location store on PostgreSQL with PostGIS
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// FindByText performs a full-text search over location name, tags and category.
// All tokens must match.
func (r *Repository) FindByText(ctx context.Context, tokens []string) ([]models.StoredLocation, error) {
	query := tsQuery(tokens)
	if query == "" {
		return []models.StoredLocation{}, nil
	}

	sql := `
		SELECT id
		FROM "Location"
		WHERE to_tsvector(coalesce(name, '')) @@ to_tsquery($1)
			OR to_tsvector(coalesce(tags, '')) @@ to_tsquery($1)
			OR to_tsvector(coalesce(category, '')) @@ to_tsquery($1)
		ORDER BY id
	`

	ids, err := r.queryIDs(ctx, sql, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute text search: %w", err)
	}

	return r.FindByIDs(ctx, ids)
}

// FindByCoordinates returns the locations stored exactly at the given point.
// Both axis orders are tried since stored points are not consistent about it.
func (r *Repository) FindByCoordinates(ctx context.Context, lat, lon float64) ([]models.StoredLocation, error) {
	sql := `
		SELECT id
		FROM "Location"
		WHERE ST_Equals(coordinates, ST_SetSRID(ST_MakePoint($1, $2), 4326))
			OR ST_Equals(coordinates, ST_SetSRID(ST_MakePoint($2, $1), 4326))
		ORDER BY id
	`

	ids, err := r.queryIDs(ctx, sql, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}

	return r.FindByIDs(ctx, ids)
}

// FindByIDs loads locations together with their user entered address and administrative layers.
// A location without an address row gets the Unknown sentinel in every address field.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]models.StoredLocation, error) {
	if len(ids) == 0 {
		return []models.StoredLocation{}, nil
	}

	sql := `
		SELECT
			l.id,
			l.name,
			l.latitude,
			l.longitude,
			coalesce(l.tags, ''),
			coalesce(l.category, ''),
			coalesce(a.street, $2),
			coalesce(a.locality, $2),
			coalesce(a.landmark, $2)
		FROM "Location" l
		LEFT JOIN "UserEnteredAddress" a ON a.id = l.user_entered_address_id
		WHERE l.id = ANY($1)
		ORDER BY l.id
	`

	rows, err := r.db.Query(ctx, sql, ids, models.Unknown)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to load locations: %w", err)
	}
	defer rows.Close()

	locations := []models.StoredLocation{}
	index := make(map[int64]int, len(ids))
	for rows.Next() {
		var loc models.StoredLocation
		err := rows.Scan(
			&loc.ID,
			&loc.Name,
			&loc.Latitude,
			&loc.Longitude,
			&loc.Tags,
			&loc.Category,
			&loc.Address.Street,
			&loc.Address.Locality,
			&loc.Address.Landmark,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan location: %w", err)
		}
		index[loc.ID] = len(locations)
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	if err := r.attachAdmLayers(ctx, ids, locations, index); err != nil {
		return nil, err
	}

	return locations, nil
}

func (r *Repository) attachAdmLayers(ctx context.Context, ids []int64, locations []models.StoredLocation, index map[int64]int) error {
	sql := `
		SELECT location_id, type::text, name
		FROM "AdmLayer"
		WHERE location_id = ANY($1)
		ORDER BY location_id, id
	`

	rows, err := r.db.Query(ctx, sql, ids)
	if err != nil {
		return fmt.Errorf("repository: failed to load administrative layers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			locationID int64
			layer      models.AdmLayer
		)
		if err := rows.Scan(&locationID, &layer.Level, &layer.Name); err != nil {
			return fmt.Errorf("repository: failed to scan administrative layer: %w", err)
		}
		i, ok := index[locationID]
		if !ok {
			continue
		}
		locations[i].AdmLayers = append(locations[i].AdmLayers, layer)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("repository: error iterating administrative layers: %w", err)
	}

	return nil
}

func (r *Repository) queryIDs(ctx context.Context, sql string, args ...any) ([]int64, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// tsQuery AND-joins tokens into a to_tsquery expression, dropping characters that carry
// meaning in tsquery syntax.
func tsQuery(tokens []string) string {
	clean := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.Map(func(r rune) rune {
			if strings.ContainsRune(`&|!():*<>'\`, r) {
				return -1
			}
			return r
		}, token)
		token = strings.TrimSpace(token)
		if token != "" {
			clean = append(clean, token)
		}
	}
	return strings.Join(clean, " & ")
}
