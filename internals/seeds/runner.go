package seeds

import (
	"os"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"erp_backend/internals/seeds/masters"
)

// RunAllSeeds loads master data from a JSON file. Rows that already exist by name are kept.
func RunAllSeeds(db *gorm.DB, filePath string) error {
	log.Info().Str("file", filePath).Msg("reading seed file")

	b, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrap(err, "read seed file")
	}
	var data masters.File
	if err := sonic.Unmarshal(b, &data); err != nil {
		return errors.Wrap(err, "decode seed file")
	}
	return masters.Seed(db, data)
}
