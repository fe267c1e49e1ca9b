package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/pkg/geo"
)

// DefaultSourceSRID is the projection of the open-data crime feed (UTM zone 10N)
const DefaultSourceSRID = 32610

// Pool is the subset of pgxpool.Pool used by the repository
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// PostgresRepository implements domain.IncidentRepository over the crimes table.
// Projected X/Y coordinates are converted to WGS84 by PostGIS.
type PostgresRepository struct {
	pool Pool
	srid int
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool Pool, sourceSRID int) *PostgresRepository {
	if sourceSRID <= 0 {
		sourceSRID = DefaultSourceSRID
	}
	return &PostgresRepository{pool: pool, srid: sourceSRID}
}

// ListIncidents reads every geolocated crime, skipping rows whose location
// was withheld (X and Y recorded as zero).
func (r *PostgresRepository) ListIncidents(ctx context.Context) ([]domain.IncidentPoint, error) {
	query := `
		SELECT
			ST_Y(pt) AS lat,
			ST_X(pt) AS lng,
			COALESCE(type, '') AS type,
			COALESCE(neighbourhood, '') AS neighbourhood,
			COALESCE(year, 0), COALESCE(month, 0), COALESCE(day, 0),
			COALESCE(hour, 0), COALESCE(minute, 0)
		FROM crimes,
			 ST_Transform(ST_SetSRID(ST_MakePoint(x, y), $1), 4326) AS pt
		WHERE x IS NOT NULL AND y IS NOT NULL
		  AND NOT (x = 0 AND y = 0)
		ORDER BY year, month, day, hour, minute, neighbourhood, type
	`

	rows, err := r.pool.Query(ctx, query, r.srid)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query incidents")
	}
	defer rows.Close()

	results := make([]domain.IncidentPoint, 0)
	for rows.Next() {
		var (
			lat, lng                       float64
			category, zone                 string
			year, month, day, hour, minute int
		)
		if err := rows.Scan(
			&lat, &lng, &category, &zone,
			&year, &month, &day, &hour, &minute,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan incident row")
		}
		results = append(results, domain.IncidentPoint{
			Point:     geo.Point{Lat: lat, Lng: lng},
			Category:  category,
			ZoneName:  zone,
			Timestamp: domain.IncidentTimestamp(year, month, day, hour, minute),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate incident rows")
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return eris.Wrap(err, "postgres: health check failed")
	}
	return nil
}
