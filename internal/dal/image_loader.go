package dal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// LoadImagesIntoDatabase loads image files from the static/images directory
// into the experiences table so instances without a shared volume can still
// serve catalog images
func LoadImagesIntoDatabase(db *sql.DB, imagesDir string) error {
	files, err := filepath.Glob(filepath.Join(imagesDir, "*.png"))
	if err != nil {
		return fmt.Errorf("failed to list image files: %w", err)
	}

	if len(files) == 0 {
		// Nothing to migrate
		return nil
	}

	for _, filePath := range files {
		imageData, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read image file %s: %w", filePath, err)
		}

		fileName := filepath.Base(filePath)
		imageName := "/images/" + fileName

		_, err = db.Exec(`
			UPDATE experiences
			SET image_data = $1
			WHERE image = $2
		`, imageData, imageName)

		if err != nil {
			return fmt.Errorf("failed to update image data for %s: %w", fileName, err)
		}
	}

	return nil
}

// MigrateImagesToDatabase loads catalog images during seeding. Skipped when
// the images directory is absent.
func (p *PostgresDAL) MigrateImagesToDatabase() error {
	imagesDir := "static/images"
	if _, err := os.Stat(imagesDir); os.IsNotExist(err) {
		return nil
	}

	return LoadImagesIntoDatabase(p.db, imagesDir)
}
