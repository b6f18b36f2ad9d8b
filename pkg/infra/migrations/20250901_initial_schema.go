package migrations

import (
	"github.com/NeuralTrust/TakeALook/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250901_initial_schema",
		Name: "Create logs, errors and notifications tables",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS logs (
					id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					file_name      TEXT NOT NULL,
					file_hash      TEXT NOT NULL,
					file_size      INTEGER NOT NULL,
					content        TEXT NOT NULL,
					uploaded_by    TEXT,
					status         TEXT NOT NULL DEFAULT 'processing',
					failure_reason TEXT,
					categories     TEXT[],
					created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT logs_status_check CHECK (status IN ('processing', 'completed', 'failed'))
				);
			`).Error; err != nil {
				return err
			}

			// the fingerprint index enforces at-most-once processing
			if err := db.Exec(`
				CREATE UNIQUE INDEX IF NOT EXISTS idx_logs_file_hash ON logs (file_hash);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs (created_at DESC);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS errors (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					log_id      UUID NOT NULL REFERENCES logs(id) ON DELETE CASCADE,
					error_type  TEXT NOT NULL,
					message     TEXT NOT NULL,
					line_number INTEGER,
					severity    TEXT NOT NULL,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT errors_severity_check CHECK (severity IN ('low', 'medium', 'critical'))
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_errors_log_id ON errors (log_id, line_number);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_errors_created_at ON errors (created_at);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE TABLE IF NOT EXISTS notifications (
					id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id    TEXT,
					type       TEXT NOT NULL,
					message    TEXT NOT NULL,
					sent       BOOLEAN NOT NULL DEFAULT FALSE,
					sent_at    TIMESTAMPTZ,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS notifications, errors, logs;`).Error
		},
	})
}
