package migrations

import (
	"github.com/NeuralTrust/TakeALook/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250915_finding_position",
		Name: "Add match order within a line to errors",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				ALTER TABLE errors ADD COLUMN IF NOT EXISTS position INTEGER NOT NULL DEFAULT 0;
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`DROP INDEX IF EXISTS idx_errors_log_id;`).Error; err != nil {
				return err
			}
			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_errors_log_id_position ON errors (log_id, line_number, position);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP INDEX IF EXISTS idx_errors_log_id_position;`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_errors_log_id ON errors (log_id, line_number);
			`).Error; err != nil {
				return err
			}
			return db.Exec(`ALTER TABLE errors DROP COLUMN IF EXISTS position;`).Error
		},
	})
}
