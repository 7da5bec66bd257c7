package engine

import (
	"context"
	"errors"
	"strings"

	"critiquehub/internal/domain/engagement"
	"critiquehub/internal/domain/gallery"
	"critiquehub/internal/domain/media"

	"gorm.io/gorm"
)

type CreateArtworkInput struct {
	AuthorID  uint
	Title     string
	Medium    string
	WidthCM   int
	HeightCM  int
	FolderID  *string
	ImagePath string
}

// CreateArtwork persists a new artwork and its first version.
func (e *Engine) CreateArtwork(ctx context.Context, in CreateArtworkInput) (*gallery.Artwork, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	var out gallery.Artwork
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.FolderID != nil {
			var f gallery.Folder
			if err := tx.First(&f, "id = ? AND owner_id = ?", *in.FolderID, in.AuthorID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
		}

		out = gallery.Artwork{
			AuthorID: in.AuthorID,
			Title:    in.Title,
			Medium:   in.Medium,
			WidthCM:  in.WidthCM,
			HeightCM: in.HeightCM,
			FolderID: in.FolderID,
		}
		if in.ImagePath != "" {
			img := media.Image{OriginalPath: in.ImagePath}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
			out.ImageID = &img.ID
		}
		if err := tx.Create(&out).Error; err != nil {
			return err
		}

		_, err := createVersion(tx, out.ID, out.ImageID, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateVersion snapshots a new immutable version of the artwork.
// Only the author may add versions. Version numbers are assigned
// max+1 inside the transaction, so they are unique and monotonically
// increasing per artwork.
func (e *Engine) CreateVersion(ctx context.Context, artworkID string, actorID uint, imagePath, caption string) (*gallery.ArtworkVersion, error) {
	var out *gallery.ArtworkVersion
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var art gallery.Artwork
		if err := tx.First(&art, "id = ?", artworkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if art.AuthorID != actorID {
			return ErrNotFound
		}

		var imageID *string
		if imagePath != "" {
			img := media.Image{OriginalPath: imagePath}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
			imageID = &img.ID
		}

		v, err := createVersion(tx, artworkID, imageID, caption)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func createVersion(tx *gorm.DB, artworkID string, imageID *string, caption string) (*gallery.ArtworkVersion, error) {
	var maxNo int
	if err := tx.Model(&gallery.ArtworkVersion{}).
		Where("artwork_id = ?", artworkID).
		Select("COALESCE(MAX(version_no), 0)").
		Scan(&maxNo).Error; err != nil {
		return nil, err
	}

	v := gallery.ArtworkVersion{
		ArtworkID: artworkID,
		VersionNo: maxNo + 1,
		ImageID:   imageID,
		Caption:   caption,
	}
	if err := tx.Create(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteArtwork removes the artwork and everything hanging off it:
// versions, critiques, comments, their reactions, and likes.
// Notifications referencing the removed rows stay put; their targets
// resolve as unavailable afterwards.
func (e *Engine) DeleteArtwork(ctx context.Context, id string, actorID uint, moderator bool) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var art gallery.Artwork
		if err := tx.First(&art, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if art.AuthorID != actorID && !moderator {
			return ErrNotFound
		}

		var critiqueIDs []string
		if err := tx.Model(&engagement.Critique{}).
			Where("artwork_id = ?", id).
			Pluck("id", &critiqueIDs).Error; err != nil {
			return err
		}
		var commentIDs []string
		if err := tx.Model(&engagement.Comment{}).
			Where("artwork_id = ?", id).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}

		if len(critiqueIDs) > 0 {
			if err := tx.Where("target_type = ? AND target_id IN ?",
				engagement.ReactionTargetCritique, critiqueIDs).
				Delete(&engagement.Reaction{}).Error; err != nil {
				return err
			}
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("target_type = ? AND target_id IN ?",
				engagement.ReactionTargetComment, commentIDs).
				Delete(&engagement.Reaction{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("artwork_id = ?", id).Delete(&engagement.Critique{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&engagement.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&engagement.ArtworkLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", id).Delete(&gallery.ArtworkVersion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&gallery.Artwork{}, "id = ?", id).Error
	})
}

// GetArtwork loads an artwork with its versions.
func (e *Engine) GetArtwork(ctx context.Context, id string) (*gallery.Artwork, error) {
	var art gallery.Artwork
	err := e.db.WithContext(ctx).
		Preload("Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version_no ASC")
		}).
		Preload("Image").
		First(&art, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &art, nil
}

// ------------------------------
// Folders
// ------------------------------

// CreateFolder appends a folder at the end of the owner's order.
func (e *Engine) CreateFolder(ctx context.Context, ownerID uint, name string) (*gallery.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	var out gallery.Folder
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxIdx int
		if err := tx.Model(&gallery.Folder{}).
			Where("owner_id = ?", ownerID).
			Select("COALESCE(MAX(sort_index), -1)").
			Scan(&maxIdx).Error; err != nil {
			return err
		}
		out = gallery.Folder{OwnerID: ownerID, Name: name, SortIndex: maxIdx + 1}
		return tx.Create(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ReorderFolders rewrites sort_index from the given id order. Every
// folder of the owner must appear exactly once.
func (e *Engine) ReorderFolders(ctx context.Context, ownerID uint, orderedIDs []string) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned []string
		if err := tx.Model(&gallery.Folder{}).
			Where("owner_id = ?", ownerID).
			Pluck("id", &owned).Error; err != nil {
			return err
		}
		if len(owned) != len(orderedIDs) {
			return &ValidationError{Field: "order", Reason: "must list every folder exactly once"}
		}
		ownedSet := make(map[string]bool, len(owned))
		for _, id := range owned {
			ownedSet[id] = true
		}
		for _, id := range orderedIDs {
			if !ownedSet[id] {
				return ErrNotFound
			}
		}

		for i, id := range orderedIDs {
			if err := tx.Model(&gallery.Folder{}).
				Where("id = ? AND owner_id = ?", id, ownerID).
				Update("sort_index", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// MoveArtworkToFolder re-files an artwork; nil folderID removes it
// from any folder.
func (e *Engine) MoveArtworkToFolder(ctx context.Context, artworkID string, actorID uint, folderID *string) error {
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var art gallery.Artwork
		if err := tx.First(&art, "id = ? AND author_id = ?", artworkID, actorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if folderID != nil {
			var f gallery.Folder
			if err := tx.First(&f, "id = ? AND owner_id = ?", *folderID, actorID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
		}
		return tx.Model(&gallery.Artwork{}).
			Where("id = ?", artworkID).
			Update("folder_id", folderID).Error
	})
}
