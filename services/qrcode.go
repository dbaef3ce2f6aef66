package services

import (
	"context"

	"github.com/congress-app/congress-backend/models"
	"github.com/congress-app/congress-backend/store"
	"github.com/congress-app/congress-backend/utils"
)

// QRService manages the admin side of an event's QR credential. Role
// enforcement happens upstream at the route layer; every change here takes
// effect on the very next scan because the coordinator reads the event
// fresh on each attempt.
type QRService struct {
	store store.Store
}

func NewQRService(st store.Store) *QRService {
	return &QRService{store: st}
}

// IssueToken returns a fresh token for a newly created event.
func (s *QRService) IssueToken() string {
	return utils.GenerateQRToken(utils.DefaultQRTokenLength)
}

// Regenerate replaces the event's token and forces the validity gate back
// on: the old token is permanently dead either way, so a regenerated code
// always comes up active. The event struct is updated in place on success.
func (s *QRService) Regenerate(ctx context.Context, event *models.Event) (string, error) {
	token := s.IssueToken()
	if err := s.store.SetEventQR(ctx, event.ID, token, true); err != nil {
		return "", err
	}
	event.QRToken = token
	event.QRValid = true
	return token, nil
}

// SetValidity toggles the check-in gate without touching the token, so an
// admin can pause scans and later resume with the same printed code.
func (s *QRService) SetValidity(ctx context.Context, event *models.Event, valid bool) error {
	if err := s.store.SetEventQRValidity(ctx, event.ID, valid); err != nil {
		return err
	}
	event.QRValid = valid
	return nil
}
