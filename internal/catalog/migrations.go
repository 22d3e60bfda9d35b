package catalog

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Reference poses table - stores judged reference poses with their
		// dense surface maps serialized as JSON
		`CREATE TABLE IF NOT EXISTS reference_poses (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			category TEXT NOT NULL CHECK(category IN (
				'front-relaxed', 'front-double-biceps', 'side-chest',
				'back-double-biceps', 'side-triceps', 'abdominal-and-thigh',
				'most-muscular')),
			image_ref TEXT NOT NULL DEFAULT '',
			dense_map TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Index for category-filtered listing
		`CREATE INDEX IF NOT EXISTS idx_reference_poses_category ON reference_poses(category)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
