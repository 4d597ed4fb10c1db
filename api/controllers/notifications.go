package controllers

import (
	"net/http"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/api/validators"
	"github.com/dev-arham/ecommerce-server/internal/notifications"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

type notificationPayload struct {
	Title       string  `json:"title" validate:"required,max=120"`
	Description string  `json:"description" validate:"required"`
	ImageURL    *string `json:"imageUrl"`
}

// NotificationSend pushes a campaign to all subscribers and records it.
func NotificationSend(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload notificationPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		notification, err := svc.Send(ctx, notifications.SendInput{
			Title:       payload.Title,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "Notification sent successfully.", notification)
	}
}

// NotificationTrack reads delivery stats for a stored campaign.
func NotificationTrack(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Track(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Notification stats retrieved successfully.", map[string]any{
			"notification": result.Notification,
			"stats":        result.Stats,
		})
	}
}

// NotificationList returns a paginated campaign listing.
func NotificationList(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, sort, search := listInputs(r, "created_at", "title", "created_at")

		rows, meta, err := svc.List(ctx, notifications.ListQuery{Params: params, Sort: sort, Search: search})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, "Notifications retrieved successfully.", rows, meta)
	}
}

// NotificationDelete removes a stored campaign record.
func NotificationDelete(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Notification deleted successfully.", nil)
	}
}
