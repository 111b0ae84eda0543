package models

import "time"

// Training is an admin-managed training event announcement.
type Training struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Schedule    string    `json:"schedule"`
	Location    string    `json:"location"`
	Organizer   string    `json:"organizer"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TrainingPatch struct {
	Title       *string
	Description *string
	Schedule    *string
	Location    *string
	Organizer   *string
}

func (p TrainingPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Schedule == nil &&
		p.Location == nil && p.Organizer == nil
}
