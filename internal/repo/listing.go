package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/models"
)

// ListingWithOwner is the read model for the public listings feed: a listing
// row joined with its owner's username.
type ListingWithOwner struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"image_url"`
	Owner       string  `json:"owner"`
}

// ListingPatch carries a partial update; nil fields are left unchanged.
type ListingPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
}

func (r *GormRepo) CreateListing(ctx context.Context, listing *models.Listing) error {
	return r.DB.WithContext(ctx).Create(listing).Error
}

func (r *GormRepo) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListListings returns every listing, or only those whose category equals
// the filter exactly when one is supplied.
func (r *GormRepo) ListListings(ctx context.Context, category string) ([]ListingWithOwner, error) {
	q := r.DB.WithContext(ctx).Model(&models.Listing{}).
		Select("listings.id, listings.title, listings.description, listings.category, listings.price, listings.image_url, users.username AS owner").
		Joins("JOIN users ON users.id = listings.user_id").
		Order("listings.id ASC")

	if category != "" {
		q = q.Where("listings.category = ?", category)
	}

	items := make([]ListingWithOwner, 0)
	if err := q.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) PatchListing(ctx context.Context, listing *models.Listing, patch ListingPatch) error {
	if patch.Title != nil {
		listing.Title = *patch.Title
	}
	if patch.Description != nil {
		listing.Description = *patch.Description
	}
	if patch.Category != nil {
		listing.Category = *patch.Category
	}
	if patch.Price != nil {
		listing.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		listing.ImageURL = patch.ImageURL
	}

	return r.DB.WithContext(ctx).Save(listing).Error
}

func (r *GormRepo) DeleteListing(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Listing{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
