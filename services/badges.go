package services

import (
	"context"

	"github.com/congress-app/congress-backend/models"
	"github.com/congress-app/congress-backend/store"
)

// BadgeService awards attendance milestones. Award logic is driven entirely
// by the models.Milestones table.
type BadgeService struct {
	store store.Store
}

func NewBadgeService(st store.Store) *BadgeService {
	return &BadgeService{store: st}
}

// MilestonesReached returns every milestone whose requirement is satisfied
// by the given attendance count, in ascending order.
func MilestonesReached(attendanceCount int) []models.Badge {
	var reached []models.Badge
	for _, m := range models.Milestones {
		if m.Requirement <= attendanceCount {
			reached = append(reached, m)
		}
	}
	return reached
}

// AwardNewBadges diffs the milestones satisfied by newAttendanceCount
// against the badges the participant already holds, persists the difference
// and returns only the newly earned badges. Appending uses set-union
// semantics, so calling it twice with the same inputs awards nothing twice.
func (s *BadgeService) AwardNewBadges(ctx context.Context, participantID string, newAttendanceCount int, currentBadges []models.Badge) ([]models.Badge, error) {
	held := make(map[string]bool, len(currentBadges))
	for _, b := range currentBadges {
		held[b.ID] = true
	}

	var earned []models.Badge
	for _, m := range MilestonesReached(newAttendanceCount) {
		if !held[m.ID] {
			earned = append(earned, m)
		}
	}
	if len(earned) == 0 {
		return nil, nil
	}

	if err := s.store.AppendBadges(ctx, participantID, earned); err != nil {
		return nil, err
	}
	return earned, nil
}

// BadgeProgress describes how far a participant is from the next milestone.
type BadgeProgress struct {
	Next      models.Badge `json:"next_badge"`
	Remaining int          `json:"remaining"`
	Percent   int          `json:"percent"`
}

// ProgressToNext returns progress towards the first unreached milestone, or
// nil once every milestone is held.
func ProgressToNext(attendanceCount int) *BadgeProgress {
	for _, m := range models.Milestones {
		if m.Requirement > attendanceCount {
			return &BadgeProgress{
				Next:      m,
				Remaining: m.Requirement - attendanceCount,
				Percent:   attendanceCount * 100 / m.Requirement,
			}
		}
	}
	return nil
}
