package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/mykafka"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/search"
)

// ErrNotOwner is returned when an authenticated caller touches a listing
// that belongs to somebody else.
var ErrNotOwner = errors.New("caller is not the listing owner")

type ListingService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	Search   *search.Client
}

func (s *ListingService) Create(ctx context.Context, ownerID uint, listing *models.Listing) error {
	listing.UserID = ownerID
	if err := s.Repo.CreateListing(ctx, listing); err != nil {
		return err
	}

	s.publish(ctx, fmt.Sprint(ownerID), map[string]interface{}{
		"type":      "listing_created",
		"listingID": listing.ID,
		"userID":    ownerID,
		"title":     listing.Title,
	})
	s.index(ctx, listing)

	return nil
}

func (s *ListingService) List(ctx context.Context, category string) ([]repo.ListingWithOwner, error) {
	return s.Repo.ListListings(ctx, category)
}

// Update overwrites only the fields present in patch. Existence is checked
// before ownership, so an unknown id reports not-found even to a stranger.
func (s *ListingService) Update(ctx context.Context, id, callerID uint, patch repo.ListingPatch) (*models.Listing, error) {
	listing, err := s.Repo.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.UserID != callerID {
		return nil, ErrNotOwner
	}

	if err := s.Repo.PatchListing(ctx, listing, patch); err != nil {
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(callerID), map[string]interface{}{
		"type":      "listing_updated",
		"listingID": listing.ID,
		"userID":    callerID,
	})
	s.index(ctx, listing)

	return listing, nil
}

func (s *ListingService) Delete(ctx context.Context, id, callerID uint) error {
	listing, err := s.Repo.GetListing(ctx, id)
	if err != nil {
		return err
	}
	if listing.UserID != callerID {
		return ErrNotOwner
	}

	if err := s.Repo.DeleteListing(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, fmt.Sprint(callerID), map[string]interface{}{
		"type":      "listing_deleted",
		"listingID": id,
		"userID":    callerID,
	})
	if s.Search != nil {
		if err := s.Search.DeleteListing(ctx, id); err != nil {
			logging.FromContext(ctx).Error("search delete error", "listingID", id, "error", err)
		}
	}

	return nil
}

func (s *ListingService) publish(ctx context.Context, key string, event map[string]interface{}) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "listing_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "listing_events", "error", err)
	}
}

// index keeps the search document for a listing current, best effort.
func (s *ListingService) index(ctx context.Context, listing *models.Listing) {
	if s.Search == nil {
		return
	}

	owner, err := s.Repo.GetUserByID(ctx, listing.UserID)
	if err != nil {
		logging.FromContext(ctx).Error("search index error", "listingID", listing.ID, "error", err)
		return
	}

	doc := search.Doc{
		ID:          listing.ID,
		Title:       listing.Title,
		Description: listing.Description,
		Category:    listing.Category,
		Price:       listing.Price,
		ImageURL:    listing.ImageURL,
		Owner:       owner.Username,
	}
	if err := s.Search.IndexListing(ctx, doc); err != nil {
		logging.FromContext(ctx).Error("search index error", "listingID", listing.ID, "error", err)
	}
}
