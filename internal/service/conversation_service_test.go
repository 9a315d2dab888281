package service

import (
	"context"
	"testing"
	"time"

	"github.com/agencyhub/community-service/internal/domain"
)

func newConversationFixture() (*ConversationService, *fakeUserRepo, *fakeConversationRepo, *fakePrivateMessageRepo) {
	users := newFakeUserRepo()
	conversations := newFakeConversationRepo()
	messages := newFakePrivateMessageRepo()
	svc := NewConversationService(ConversationDependencies{
		ConversationRepo: conversations,
		MessageRepo:      messages,
		UserRepo:         users,
	})
	return svc, users, conversations, messages
}

func TestResolveIsCommutative(t *testing.T) {
	svc, users, _, _ := newConversationFixture()
	ctx := context.Background()

	alice := member(users, "alice", domain.RoleUser)
	bob := member(users, "bob", domain.RoleUser)

	first, err := svc.Resolve(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("Resolve(alice, bob): %v", err)
	}
	second, err := svc.Resolve(ctx, bob, alice.ID)
	if err != nil {
		t.Fatalf("Resolve(bob, alice): %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("pair should map to one conversation: %s vs %s", first.ID, second.ID)
	}
}

func TestResolveRejectsSelf(t *testing.T) {
	svc, users, _, _ := newConversationFixture()
	alice := member(users, "alice", domain.RoleUser)

	_, err := svc.Resolve(context.Background(), alice, alice.ID)
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("self-conversation should fail validation, got %s", code)
	}
}

func TestResolveUnknownTarget(t *testing.T) {
	svc, users, _, _ := newConversationFixture()
	alice := member(users, "alice", domain.RoleUser)

	_, err := svc.Resolve(context.Background(), alice, "ghost")
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", code)
	}
}

func TestResolveSurvivesInsertRace(t *testing.T) {
	svc, users, conversations, _ := newConversationFixture()
	ctx := context.Background()

	alice := member(users, "alice", domain.RoleUser)
	bob := member(users, "bob", domain.RoleUser)

	conversations.insertRaces = 1
	conversations.racedPair = [2]string{bob.ID, alice.ID}

	conv, err := svc.Resolve(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("Resolve during race: %v", err)
	}
	if conv == nil || !conv.Involves(alice.ID) || !conv.Involves(bob.ID) {
		t.Fatal("race loser should return the winner's conversation")
	}
}

func TestSendMessageTouchesLastActivity(t *testing.T) {
	svc, users, conversations, _ := newConversationFixture()
	ctx := context.Background()

	alice := member(users, "alice", domain.RoleUser)
	bob := member(users, "bob", domain.RoleUser)

	conv, err := svc.Resolve(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	before := conv.LastMessageAt

	time.Sleep(2 * time.Millisecond)
	if _, err := svc.SendMessage(ctx, alice, conv.ID, "hi bob"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	updated, err := conversations.GetByID(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !updated.LastMessageAt.After(before) {
		t.Error("sending should bump the conversation's last activity")
	}
}

func TestConversationParticipantChecks(t *testing.T) {
	svc, users, _, _ := newConversationFixture()
	ctx := context.Background()

	alice := member(users, "alice", domain.RoleUser)
	bob := member(users, "bob", domain.RoleUser)
	eve := member(users, "eve", domain.RoleUser)

	conv, err := svc.Resolve(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if _, err := svc.SendMessage(ctx, eve, conv.ID, "intrusion"); err == nil {
		t.Error("outsiders may not post into a conversation")
	}
	if _, err := svc.ListMessages(ctx, eve, conv.ID); err == nil {
		t.Error("outsiders may not read a conversation")
	}
}

func TestConversationListOrdersByActivity(t *testing.T) {
	svc, users, _, _ := newConversationFixture()
	ctx := context.Background()

	alice := member(users, "alice", domain.RoleUser)
	bob := member(users, "bob", domain.RoleUser)
	carol := member(users, "carol", domain.RoleUser)

	withBob, err := svc.Resolve(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := svc.Resolve(ctx, alice, carol.ID); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	time.Sleep(2 * time.Millisecond)
	if _, err := svc.SendMessage(ctx, alice, withBob.ID, "ping"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	inbox, err := svc.ListConversations(ctx, alice)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(inbox) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(inbox))
	}
	if inbox[0].Conversation.ID != withBob.ID {
		t.Error("most recently active conversation should come first")
	}
	if inbox[0].Peer == nil || inbox[0].Peer.ID != bob.ID {
		t.Error("inbox entries should be joined with the peer")
	}
}

func TestPrivateMessageModeration(t *testing.T) {
	svc, users, _, _ := newConversationFixture()
	ctx := context.Background()

	alice := member(users, "alice", domain.RoleUser)
	bob := member(users, "bob", domain.RoleUser)
	mod := member(users, "mod", domain.RoleMod)

	conv, err := svc.Resolve(ctx, alice, bob.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	message, err := svc.SendMessage(ctx, alice, conv.ID, "secret")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if _, err := svc.EditMessage(ctx, bob, message.ID, "hijack"); err == nil {
		t.Error("only the sender may edit")
	}
	if _, err := svc.EditMessage(ctx, mod, message.ID, "hijack"); err == nil {
		t.Error("moderators may not edit either")
	}
	if err := svc.DeleteMessage(ctx, bob, message.ID); err == nil {
		t.Error("the other participant may not delete")
	}
	if err := svc.DeleteMessage(ctx, mod, message.ID); err != nil {
		t.Errorf("moderators may delete private messages: %v", err)
	}
}
