package dto

import (
	"time"

	"github.com/agencyhub/community-service/internal/domain"
)

// CreateEventRequest payload.
type CreateEventRequest struct {
	Title              string    `json:"title"`
	Description        *string   `json:"description"`
	AgencyName         string    `json:"agency_name"`
	AgencyLogo         *string   `json:"agency_logo"`
	Participant1Name   *string   `json:"participant1_name"`
	Participant1Avatar *string   `json:"participant1_avatar"`
	Participant2Name   *string   `json:"participant2_name"`
	Participant2Avatar *string   `json:"participant2_avatar"`
	ParticipantCount   int       `json:"participant_count"`
	Participants       []string  `json:"participants"`
	ScheduledAt        time.Time `json:"scheduled_at"`
	IsLive             bool      `json:"is_live"`
}

// EventResponse response.
type EventResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        *string   `json:"description"`
	AgencyName         string    `json:"agency_name"`
	AgencyLogo         *string   `json:"agency_logo"`
	Participant1Name   *string   `json:"participant1_name"`
	Participant1Avatar *string   `json:"participant1_avatar"`
	Participant2Name   *string   `json:"participant2_name"`
	Participant2Avatar *string   `json:"participant2_avatar"`
	ParticipantCount   int       `json:"participant_count"`
	Participants       []string  `json:"participants"`
	ScheduledAt        time.Time `json:"scheduled_at"`
	IsLive             bool      `json:"is_live"`
	CreatedBy          string    `json:"created_by"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewEventResponse maps an event.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		ID:                 event.ID,
		Title:              event.Title,
		Description:        event.Description,
		AgencyName:         event.AgencyName,
		AgencyLogo:         event.AgencyLogo,
		Participant1Name:   event.Participant1Name,
		Participant1Avatar: event.Participant1Avatar,
		Participant2Name:   event.Participant2Name,
		Participant2Avatar: event.Participant2Avatar,
		ParticipantCount:   event.ParticipantCount,
		Participants:       event.Participants,
		ScheduledAt:        event.ScheduledAt,
		IsLive:             event.IsLive,
		CreatedBy:          event.CreatedBy,
		CreatedAt:          event.CreatedAt,
	}
}
