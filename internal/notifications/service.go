package notifications

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dev-arham/ecommerce-server/pkg/db"
	"github.com/dev-arham/ecommerce-server/pkg/db/models"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/onesignal"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
)

// PushProvider sends campaigns and reads back delivery stats.
type PushProvider interface {
	CreateNotification(ctx context.Context, campaign onesignal.Campaign) (string, error)
	ViewNotification(ctx context.Context, campaignID string) (*onesignal.DeliveryStats, error)
}

// Service defines push campaign operations.
type Service interface {
	Send(ctx context.Context, input SendInput) (*models.Notification, error)
	Track(ctx context.Context, id uuid.UUID) (*TrackResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	List(ctx context.Context, query ListQuery) ([]models.Notification, pagination.Envelope, error)
}

// SendInput carries the fields accepted when sending a campaign.
type SendInput struct {
	Title       string
	Description string
	ImageURL    *string
}

// TrackResult pairs a stored campaign with its provider delivery stats.
type TrackResult struct {
	Notification *models.Notification
	Stats        *onesignal.DeliveryStats
}

type service struct {
	repo     Repository
	provider PushProvider
}

// NewService wires notification dependencies.
func NewService(repo Repository, provider PushProvider) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	if provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "push provider required")
	}
	return &service{repo: repo, provider: provider}, nil
}

// Send pushes the campaign to the provider first; the local record is only
// written once a provider campaign id exists.
func (s *service) Send(ctx context.Context, input SendInput) (*models.Notification, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Title is required.")
	}
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Description is required.")
	}

	campaign := onesignal.Campaign{Title: title, Message: description}
	if input.ImageURL != nil {
		campaign.BigPicture = *input.ImageURL
	}
	campaignID, err := s.provider.CreateNotification(ctx, campaign)
	if err != nil {
		return nil, err
	}

	notification := &models.Notification{
		ID:          uuid.New(),
		CampaignID:  campaignID,
		Title:       title,
		Description: description,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store notification")
	}
	return notification, nil
}

// Track fetches provider-side delivery stats for a stored campaign.
func (s *service) Track(ctx context.Context, id uuid.UUID) (*TrackResult, error) {
	notification, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.provider.ViewNotification(ctx, notification.CampaignID)
	if err != nil {
		return nil, err
	}
	return &TrackResult{Notification: notification, Stats: stats}, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete notification")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Notification not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find notification")
	}
	return notification, nil
}

func (s *service) List(ctx context.Context, query ListQuery) ([]models.Notification, pagination.Envelope, error) {
	rows, meta, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pagination.Envelope{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	return rows, meta, nil
}
