package domain

import "testing"

func TestGroupVisibleToPublic(t *testing.T) {
	group := &ChatGroup{ID: "g1", RequiredRole: RoleVIP}

	if group.VisibleTo("u1", RoleUser) {
		t.Error("USER should not see a VIP group")
	}
	if !group.VisibleTo("u1", RoleVIP) {
		t.Error("VIP should see a VIP group")
	}
	if !group.VisibleTo("u1", RoleAdmin) {
		t.Error("ADMIN should see every public group")
	}
}

func TestGroupVisibleToPrivate(t *testing.T) {
	group := &ChatGroup{
		ID:           "g1",
		RequiredRole: RoleUser,
		IsPrivate:    true,
		Participants: []string{"a", "b"},
	}

	if !group.VisibleTo("a", RoleUser) {
		t.Error("participant should see the private group")
	}
	if group.VisibleTo("c", RoleAdmin) {
		t.Error("private groups hide from non-participants regardless of role")
	}
}

func TestChatMessagePermissions(t *testing.T) {
	msg := &ChatMessage{ID: "m1", UserID: "sender"}

	if !msg.CanEdit("sender") {
		t.Error("sender may edit their own message")
	}
	if msg.CanEdit("other") {
		t.Error("editing is sender-only")
	}

	if !msg.CanDelete("sender", RoleUser) {
		t.Error("sender may delete their own message")
	}
	if !msg.CanDelete("other", RoleMod) {
		t.Error("moderators may delete any message")
	}
	if msg.CanDelete("other", RoleVIP) {
		t.Error("a VIP may not delete someone else's message")
	}
}

func TestConversationInvolvesAndOther(t *testing.T) {
	conv := &PrivateConversation{Participant1ID: "a", Participant2ID: "b"}

	if !conv.Involves("a") || !conv.Involves("b") {
		t.Error("both participants are involved")
	}
	if conv.Involves("c") {
		t.Error("outsiders are not involved")
	}
	if got := conv.OtherParticipant("a"); got != "b" {
		t.Errorf("OtherParticipant(a) = %q, want b", got)
	}
	if got := conv.OtherParticipant("b"); got != "a" {
		t.Errorf("OtherParticipant(b) = %q, want a", got)
	}
}
