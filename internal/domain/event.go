package domain

import "time"

// Event is a scheduled or live agency event shown on the events page.
type Event struct {
	ID                 string
	Title              string
	Description        *string
	AgencyName         string
	AgencyLogo         *string
	Participant1Name   *string
	Participant1Avatar *string
	Participant2Name   *string
	Participant2Avatar *string
	ParticipantCount   int
	Participants       []string
	ScheduledAt        time.Time
	IsLive             bool
	CreatedBy          string
	CreatedAt          time.Time
}
