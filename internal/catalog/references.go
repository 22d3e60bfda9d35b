package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/sandow/internal/densemap"
	"github.com/ayusman/sandow/internal/pose"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ReferencePose represents a judged reference pose stored in the database.
type ReferencePose struct {
	ID        string
	Label     string
	Category  pose.Category
	ImageRef  string
	DenseMap  *densemap.Map
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReferenceRepository provides CRUD operations for reference poses.
type ReferenceRepository struct {
	db *sql.DB
}

// References returns the reference pose repository for this store.
func (s *Store) References() *ReferenceRepository {
	return &ReferenceRepository{db: s.db}
}

// Create inserts a new reference pose into the database.
func (r *ReferenceRepository) Create(p *ReferencePose) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	data, err := json.Marshal(p.DenseMap)
	if err != nil {
		return fmt.Errorf("failed to encode dense map: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO reference_poses (id, label, category, image_ref, dense_map, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Label, string(p.Category), p.ImageRef, string(data), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a reference pose by its ID.
func (r *ReferenceRepository) GetByID(id string) (*ReferencePose, error) {
	p := &ReferencePose{}
	var category, denseMap string

	err := r.db.QueryRow(
		`SELECT id, label, category, image_ref, dense_map, created_at, updated_at
		 FROM reference_poses WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Label, &category, &p.ImageRef, &denseMap, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Category = pose.Category(category)
	if err := json.Unmarshal([]byte(denseMap), &p.DenseMap); err != nil {
		return nil, fmt.Errorf("failed to decode dense map: %w", err)
	}

	return p, nil
}

// List retrieves reference poses from the database in insertion order.
// An empty category returns the whole catalog.
func (r *ReferenceRepository) List(category pose.Category) ([]*ReferencePose, error) {
	var rows *sql.Rows
	var err error

	if category != "" {
		rows, err = r.db.Query(
			`SELECT id, label, category, image_ref, dense_map, created_at, updated_at
			 FROM reference_poses WHERE category = ? ORDER BY created_at, id`,
			string(category),
		)
	} else {
		rows, err = r.db.Query(
			`SELECT id, label, category, image_ref, dense_map, created_at, updated_at
			 FROM reference_poses ORDER BY created_at, id`,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var poses []*ReferencePose
	for rows.Next() {
		p := &ReferencePose{}
		var cat, denseMap string

		err := rows.Scan(&p.ID, &p.Label, &cat, &p.ImageRef, &denseMap, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}

		p.Category = pose.Category(cat)
		if err := json.Unmarshal([]byte(denseMap), &p.DenseMap); err != nil {
			return nil, fmt.Errorf("failed to decode dense map for %s: %w", p.ID, err)
		}

		poses = append(poses, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return poses, nil
}

// Update updates an existing reference pose in the database.
func (r *ReferenceRepository) Update(p *ReferencePose) error {
	p.UpdatedAt = time.Now()

	data, err := json.Marshal(p.DenseMap)
	if err != nil {
		return fmt.Errorf("failed to encode dense map: %w", err)
	}

	result, err := r.db.Exec(
		`UPDATE reference_poses SET label = ?, category = ?, image_ref = ?, dense_map = ?, updated_at = ?
		 WHERE id = ?`,
		p.Label, string(p.Category), p.ImageRef, string(data), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a reference pose from the database by its ID.
func (r *ReferenceRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM reference_poses WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
