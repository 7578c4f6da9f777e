package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parkshare/parkshare-web/services/web/models"
)

// Store wraps the read-only catalog table and the seeder's writes.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

const schemaSQL = `
    CREATE SCHEMA IF NOT EXISTS parkshare;
    CREATE TABLE IF NOT EXISTS parkshare.spots (
        id             TEXT PRIMARY KEY,
        position       INTEGER NOT NULL DEFAULT 0,
        title          TEXT NOT NULL,
        description    TEXT NOT NULL DEFAULT '',
        price_per_hour DOUBLE PRECISION NOT NULL CHECK (price_per_hour >= 0),
        location       TEXT NOT NULL DEFAULT '',
        lat            DOUBLE PRECISION NOT NULL DEFAULT 0,
        lng            DOUBLE PRECISION NOT NULL DEFAULT 0,
        image          TEXT NOT NULL DEFAULT '',
        rating         DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
        reviews        INTEGER NOT NULL DEFAULT 0 CHECK (reviews >= 0),
        features       TEXT[] NOT NULL DEFAULT '{}',
        owner_name     TEXT NOT NULL DEFAULT '',
        owner_avatar   TEXT NOT NULL DEFAULT '',
        updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )
`

// EnsureSchema creates the catalog schema and table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	return err
}

const listSpotsSQL = `
    SELECT id, title, description, price_per_hour, location, lat, lng, image,
           rating, reviews, features, owner_name, owner_avatar
    FROM parkshare.spots
    ORDER BY position, id
`

// ListSpots returns every catalog row in display order.
func (s *Store) ListSpots(ctx context.Context) ([]models.ParkingSpot, error) {
	rows, err := s.pool.Query(ctx, listSpotsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spots := make([]models.ParkingSpot, 0)
	for rows.Next() {
		var spot models.ParkingSpot
		if err := rows.Scan(
			&spot.ID,
			&spot.Title,
			&spot.Description,
			&spot.PricePerHour,
			&spot.Location,
			&spot.Coordinates.Lat,
			&spot.Coordinates.Lng,
			&spot.Image,
			&spot.Rating,
			&spot.Reviews,
			&spot.Features,
			&spot.Owner.Name,
			&spot.Owner.Avatar,
		); err != nil {
			return nil, err
		}
		spots = append(spots, spot)
	}
	return spots, rows.Err()
}

const upsertSpotSQL = `INSERT INTO parkshare.spots (id, position, title, description, price_per_hour, location, lat, lng, image, rating, reviews, features, owner_name, owner_avatar, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,NOW())
ON CONFLICT (id) DO UPDATE
SET position = EXCLUDED.position,
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    price_per_hour = EXCLUDED.price_per_hour,
    location = EXCLUDED.location,
    lat = EXCLUDED.lat,
    lng = EXCLUDED.lng,
    image = EXCLUDED.image,
    rating = EXCLUDED.rating,
    reviews = EXCLUDED.reviews,
    features = EXCLUDED.features,
    owner_name = EXCLUDED.owner_name,
    owner_avatar = EXCLUDED.owner_avatar,
    updated_at = NOW()`

// UpsertSpots writes spots in one transaction; slice order becomes position.
func (s *Store) UpsertSpots(ctx context.Context, spots []models.ParkingSpot) error {
	if len(spots) == 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i, sp := range spots {
			features := sp.Features
			if features == nil {
				features = []string{}
			}
			batch.Queue(upsertSpotSQL,
				sp.ID, i, sp.Title, sp.Description, sp.PricePerHour, sp.Location,
				sp.Coordinates.Lat, sp.Coordinates.Lng, sp.Image, sp.Rating, sp.Reviews,
				features, sp.Owner.Name, sp.Owner.Avatar,
			)
		}

		res := tx.SendBatch(ctx, batch)
		for range spots {
			if _, err := res.Exec(); err != nil {
				res.Close()
				return err
			}
		}
		return res.Close()
	})
}
