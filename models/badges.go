package models

// Badge is an earned attendance milestone. Requirement is the attendance
// count that unlocks it.
type Badge struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Requirement int    `gorm:"not null" json:"requirement"`
}

// Milestones is the badge configuration table, ordered by ascending
// requirement. Swapping the milestone set means editing this table, not the
// award logic.
var Milestones = []Badge{
	{ID: "first-steps", Name: "First Steps", Description: "Attended your first event", Requirement: 1},
	{ID: "engaged", Name: "Engaged", Description: "Attended 5 events", Requirement: 5},
	{ID: "regular", Name: "Regular", Description: "Attended 10 events", Requirement: 10},
	{ID: "dedicated", Name: "Dedicated", Description: "Attended 20 events", Requirement: 20},
	{ID: "legend", Name: "Congress Legend", Description: "Attended 50 events", Requirement: 50},
}
