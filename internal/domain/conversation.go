package domain

import "time"

// PrivateConversation is a 1:1 channel between two members, identified by
// an unordered participant pair. It is a separate mechanism from private
// chat groups: any member may start one, no moderator involvement.
type PrivateConversation struct {
	ID             string
	Participant1ID string
	Participant2ID string
	LastMessageAt  time.Time
	CreatedAt      time.Time
}

// Involves reports whether the user is one of the two participants.
func (c *PrivateConversation) Involves(userID string) bool {
	return c.Participant1ID == userID || c.Participant2ID == userID
}

// OtherParticipant returns the peer id for the given participant.
func (c *PrivateConversation) OtherParticipant(userID string) string {
	if c.Participant1ID == userID {
		return c.Participant2ID
	}
	return c.Participant1ID
}

// PrivateMessage is a single entry in a conversation's message log.
// It follows the same edit/delete asymmetry as ChatMessage.
type PrivateMessage struct {
	ID             string
	ConversationID string
	UserID         string
	Content        string
	CreatedAt      time.Time
}

// CanDelete applies the sender-or-moderator rule.
func (m *PrivateMessage) CanDelete(userID string, role Role) bool {
	return m.UserID == userID || role.IsModerator()
}

// CanEdit reports whether the requester may edit the message.
func (m *PrivateMessage) CanEdit(userID string) bool {
	return m.UserID == userID
}
