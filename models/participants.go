package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type ParticipantRole string

const (
	RoleAdmin       ParticipantRole = "admin"
	RoleParticipant ParticipantRole = "participant"
)

// Participant is a registered congress attendee. The ID is the subject id
// handed out by the identity provider at registration. Points and
// AttendanceCount are only ever mutated inside the attendance transaction;
// Badges only ever grow.
type Participant struct {
	ID              string          `gorm:"primaryKey;size:128" json:"id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Email           string          `gorm:"size:255;unique;not null" json:"email"`
	Password        string          `gorm:"size:255" json:"-"` // Exclude password hash from JSON
	Points          int             `gorm:"not null;default:0" json:"points"`
	AttendanceCount int             `gorm:"not null;default:0" json:"attendance_count"`
	Badges          []Badge         `gorm:"many2many:participant_badges" json:"badges"`
	Role            ParticipantRole `gorm:"type:participant_role;default:'participant'" json:"role"`
	RefreshToken    string          `gorm:"size:512" json:"-"`
	RefreshTokenExp time.Time       `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HashPassword hashes the given plaintext and stores it on the participant.
func (p *Participant) HashPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Password = string(hash)
	return nil
}

// CheckPassword compares the given plaintext against the stored hash.
func (p *Participant) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(plain)) == nil
}

// HasBadge reports whether the participant already holds the badge id.
func (p *Participant) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}
