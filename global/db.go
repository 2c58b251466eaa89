package global

import (
	"github.com/jinzhu/gorm"
	_ "modernc.org/sqlite"
	"tvtv2xmltv/model"
)

var DB *gorm.DB

// InitDB opens the sqlite store holding the config table and the run
// history, then primes the config cache with stored values, falling
// back to the built-in defaults for keys never saved.
func InitDB(path string) error {
	db, err := gorm.Open("sqlite", path)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&model.Config{}, &model.GuideRun{}).Error; err != nil {
		db.Close()
		return err
	}
	DB = db
	for key, fallback := range defaultConfigValue {
		var row model.Config
		err := DB.Where("name = ?", key).First(&row).Error
		switch {
		case err == nil:
			ConfigCache.Store(key, row.Data)
		case gorm.IsRecordNotFoundError(err):
			ConfigCache.Store(key, fallback)
		default:
			return err
		}
	}
	return nil
}

func init() {
	// use sqlite3 dialect for sqlite
	if dialect, ok := gorm.GetDialect("sqlite3"); ok {
		gorm.RegisterDialect("sqlite", dialect)
	}
}
