package domain

import "time"

// ChatGroup is a conversation surface for two or more members.
//
// A public group is visible to anyone whose role rank meets RequiredRole.
// A private group is visible only to its participant list and ignores
// RequiredRole entirely.
type ChatGroup struct {
	ID           string
	Name         string
	Description  *string
	RequiredRole Role
	IsPrivate    bool
	Participants []string
	CreatedBy    string
	CreatedAt    time.Time
}

// VisibleTo implements the group visibility rule for a single requester.
func (g *ChatGroup) VisibleTo(userID string, role Role) bool {
	if g.IsPrivate {
		return g.HasParticipant(userID)
	}
	return role.Rank() >= g.RequiredRole.Rank()
}

// HasParticipant reports membership in a private group's participant list.
func (g *ChatGroup) HasParticipant(userID string) bool {
	for _, p := range g.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// ChatMessage is a single entry in a group's message log.
type ChatMessage struct {
	ID        string
	GroupID   string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// CanDelete applies the moderation override: the sender may always delete
// their own message, moderators may delete anyone's. Editing has no such
// override and stays sender-only.
func (m *ChatMessage) CanDelete(userID string, role Role) bool {
	return m.UserID == userID || role.IsModerator()
}

// CanEdit reports whether the requester may edit the message.
func (m *ChatMessage) CanEdit(userID string) bool {
	return m.UserID == userID
}
