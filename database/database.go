package database

import (
	"log"
	"os"

	"critiquehub/internal/domain/engagement"
	"critiquehub/internal/domain/gallery"
	"critiquehub/internal/domain/karma"
	"critiquehub/internal/domain/media"
	"critiquehub/internal/domain/members"
	"critiquehub/internal/domain/notifications"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	log.Println("Connected and migrated successfully")
}

// Migrate runs AutoMigrate for every domain model. Shared with the
// test setup so tests exercise the same schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// identity
		&members.Member{},

		// media
		&media.Image{},

		// gallery
		&gallery.Folder{},
		&gallery.Artwork{},
		&gallery.ArtworkVersion{},

		// engagement
		&engagement.Critique{},
		&engagement.Comment{},
		&engagement.Reaction{},
		&engagement.ArtworkLike{},

		// derived
		&notifications.Notification{},
		&karma.KarmaEvent{},
	)
}
