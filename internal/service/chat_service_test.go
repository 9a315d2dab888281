package service

import (
	"context"
	"errors"
	"testing"

	"github.com/agencyhub/community-service/internal/domain"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

func newChatFixture() (*ChatService, *fakeUserRepo, *fakeGroupRepo, *fakeMessageRepo) {
	users := newFakeUserRepo()
	groups := newFakeGroupRepo()
	messages := newFakeMessageRepo()
	svc := NewChatService(ChatDependencies{
		GroupRepo:   groups,
		MessageRepo: messages,
		UserRepo:    users,
	})
	return svc, users, groups, messages
}

func member(users *fakeUserRepo, username string, role domain.Role) *domain.User {
	return users.add(&domain.User{
		Username:    username,
		DisplayName: username,
		Role:        role,
		Level:       1,
	})
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return domainErr.Code
}

func TestListVisibleGroupsFiltersByRoleAndParticipation(t *testing.T) {
	svc, users, _, _ := newChatFixture()
	ctx := context.Background()

	user := member(users, "plain", domain.RoleUser)
	vip := member(users, "vip", domain.RoleVIP)
	mod := member(users, "mod", domain.RoleMod)

	mustCreateGroup(t, svc, mod, "General", domain.RoleUser)
	mustCreateGroup(t, svc, mod, "VIP Lounge", domain.RoleVIP)
	mustCreateGroup(t, svc, mod, "Staff Room", domain.RoleMod)

	private, err := svc.StartPrivateGroup(ctx, mod, vip.ID)
	if err != nil {
		t.Fatalf("StartPrivateGroup: %v", err)
	}

	visible, err := svc.ListVisibleGroups(ctx, user)
	if err != nil {
		t.Fatalf("ListVisibleGroups: %v", err)
	}
	if len(visible) != 1 || visible[0].Name != "General" {
		t.Fatalf("USER should only see General, got %d groups", len(visible))
	}

	visible, err = svc.ListVisibleGroups(ctx, vip)
	if err != nil {
		t.Fatalf("ListVisibleGroups: %v", err)
	}
	if len(visible) != 3 {
		t.Fatalf("VIP should see General, VIP Lounge and their private group, got %d", len(visible))
	}
	found := false
	for _, g := range visible {
		if g.ID == private.ID {
			found = true
		}
	}
	if !found {
		t.Error("private group participant should see the private group")
	}

	visible, err = svc.ListVisibleGroups(ctx, groupsAdmin(users))
	if err != nil {
		t.Fatalf("ListVisibleGroups: %v", err)
	}
	for _, g := range visible {
		if g.ID == private.ID {
			t.Error("admin non-participant should not see a private group")
		}
	}
}

func groupsAdmin(users *fakeUserRepo) *domain.User {
	return users.add(&domain.User{Username: "root", DisplayName: "root", Role: domain.RoleAdmin, Level: 100})
}

func mustCreateGroup(t *testing.T, svc *ChatService, requester *domain.User, name string, role domain.Role) *domain.ChatGroup {
	t.Helper()
	group, err := svc.CreateGroup(context.Background(), requester, GroupCreateInput{Name: name, RequiredRole: role})
	if err != nil {
		t.Fatalf("CreateGroup(%s): %v", name, err)
	}
	return group
}

func TestCreateGroupRequiresModerator(t *testing.T) {
	svc, users, _, _ := newChatFixture()

	user := member(users, "plain", domain.RoleUser)
	_, err := svc.CreateGroup(context.Background(), user, GroupCreateInput{Name: "Nope"})
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %s", code)
	}

	vip := member(users, "vip", domain.RoleVIP)
	_, err = svc.CreateGroup(context.Background(), vip, GroupCreateInput{Name: "Nope"})
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Errorf("VIP cannot create groups, got %s", code)
	}
}

func TestCreateGroupValidation(t *testing.T) {
	svc, users, _, _ := newChatFixture()
	mod := member(users, "mod", domain.RoleMod)

	_, err := svc.CreateGroup(context.Background(), mod, GroupCreateInput{Name: "   "})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("blank name should fail validation, got %s", code)
	}

	_, err = svc.CreateGroup(context.Background(), mod, GroupCreateInput{Name: "x", RequiredRole: domain.Role("ROOT")})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("unknown role should fail validation, got %s", code)
	}

	group, err := svc.CreateGroup(context.Background(), mod, GroupCreateInput{Name: "Default Role"})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if group.RequiredRole != domain.RoleUser {
		t.Errorf("empty required role should default to USER, got %s", group.RequiredRole)
	}
}

func TestStartPrivateGroupDedupes(t *testing.T) {
	svc, users, _, _ := newChatFixture()
	ctx := context.Background()

	mod := member(users, "modname", domain.RoleMod)
	target := member(users, "targetname", domain.RoleUser)

	first, err := svc.StartPrivateGroup(ctx, mod, target.ID)
	if err != nil {
		t.Fatalf("StartPrivateGroup: %v", err)
	}
	if !first.IsPrivate {
		t.Error("expected a private group")
	}
	if first.Name != "modname - targetname" {
		t.Errorf("unexpected synthesized name %q", first.Name)
	}

	second, err := svc.StartPrivateGroup(ctx, mod, target.ID)
	if err != nil {
		t.Fatalf("second StartPrivateGroup: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected existing group %s, got %s", first.ID, second.ID)
	}
}

func TestStartPrivateGroupUnknownTarget(t *testing.T) {
	svc, users, _, _ := newChatFixture()
	mod := member(users, "mod", domain.RoleMod)

	_, err := svc.StartPrivateGroup(context.Background(), mod, "missing")
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", code)
	}
}

func TestSendAndListGroupMessages(t *testing.T) {
	svc, users, _, _ := newChatFixture()
	ctx := context.Background()

	mod := member(users, "mod", domain.RoleMod)
	user := member(users, "plain", domain.RoleUser)
	group := mustCreateGroup(t, svc, mod, "General", domain.RoleUser)

	if _, err := svc.SendMessage(ctx, user, group.ID, "hello"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if _, err := svc.SendMessage(ctx, mod, group.ID, "welcome"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if _, err := svc.SendMessage(ctx, user, group.ID, "  "); err == nil {
		t.Error("blank content should be rejected")
	}

	messages, err := svc.ListGroupMessages(ctx, user, group.ID)
	if err != nil {
		t.Fatalf("ListGroupMessages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Message.Content != "hello" {
		t.Error("messages should be ordered oldest first")
	}
	if messages[0].Sender == nil || messages[0].Sender.ID != user.ID {
		t.Error("messages should be joined with their sender")
	}
}

func TestListGroupMessagesEnforcesVisibility(t *testing.T) {
	svc, users, _, _ := newChatFixture()
	ctx := context.Background()

	mod := member(users, "mod", domain.RoleMod)
	user := member(users, "plain", domain.RoleUser)
	vipGroup := mustCreateGroup(t, svc, mod, "VIP Lounge", domain.RoleVIP)

	_, err := svc.ListGroupMessages(ctx, user, vipGroup.ID)
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Errorf("USER reading a VIP group should be FORBIDDEN, got %s", code)
	}
}

func TestSendMessageEnforcesVisibility(t *testing.T) {
	svc, users, _, messages := newChatFixture()
	ctx := context.Background()

	mod := member(users, "mod", domain.RoleMod)
	user := member(users, "plain", domain.RoleUser)
	vip := member(users, "vip", domain.RoleVIP)
	vipGroup := mustCreateGroup(t, svc, mod, "VIP Lounge", domain.RoleVIP)

	_, err := svc.SendMessage(ctx, user, vipGroup.ID, "let me in")
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Errorf("USER posting into a VIP group should be FORBIDDEN, got %s", code)
	}

	private, err := svc.StartPrivateGroup(ctx, mod, vip.ID)
	if err != nil {
		t.Fatalf("StartPrivateGroup: %v", err)
	}
	_, err = svc.SendMessage(ctx, user, private.ID, "hello?")
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Errorf("non-participant posting into a private group should be FORBIDDEN, got %s", code)
	}

	if _, err := svc.SendMessage(ctx, vip, private.ID, "hi"); err != nil {
		t.Fatalf("participant should be able to post: %v", err)
	}
	count, _ := messages.Count(ctx)
	if count != 1 {
		t.Errorf("expected only the participant's message stored, got %d", count)
	}
}

func TestEditMessageSenderOnly(t *testing.T) {
	svc, users, _, _ := newChatFixture()
	ctx := context.Background()

	mod := member(users, "mod", domain.RoleMod)
	user := member(users, "plain", domain.RoleUser)
	group := mustCreateGroup(t, svc, mod, "General", domain.RoleUser)

	message, err := svc.SendMessage(ctx, user, group.ID, "original")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	// The moderation override covers deletion, not editing.
	_, err = svc.EditMessage(ctx, mod, message.ID, "edited by mod")
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Errorf("moderator editing someone else's message should be FORBIDDEN, got %s", code)
	}

	edited, err := svc.EditMessage(ctx, user, message.ID, "edited")
	if err != nil {
		t.Fatalf("EditMessage: %v", err)
	}
	if edited.Content != "edited" {
		t.Errorf("content not updated: %q", edited.Content)
	}
	if !edited.CreatedAt.Equal(message.CreatedAt) {
		t.Error("editing must not change the original timestamp")
	}
}

func TestDeleteMessageModeratorOverride(t *testing.T) {
	svc, users, _, _ := newChatFixture()
	ctx := context.Background()

	mod := member(users, "mod", domain.RoleMod)
	user := member(users, "plain", domain.RoleUser)
	other := member(users, "other", domain.RoleVIP)
	group := mustCreateGroup(t, svc, mod, "General", domain.RoleUser)

	message, err := svc.SendMessage(ctx, user, group.ID, "to delete")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if err := svc.DeleteMessage(ctx, other, message.ID); err == nil {
		t.Error("a non-moderator may not delete someone else's message")
	}
	if err := svc.DeleteMessage(ctx, mod, message.ID); err != nil {
		t.Errorf("moderator should delete any message: %v", err)
	}
}

func TestClearGroupMessagesReturnsCount(t *testing.T) {
	svc, users, _, _ := newChatFixture()
	ctx := context.Background()

	mod := member(users, "mod", domain.RoleMod)
	user := member(users, "plain", domain.RoleUser)
	group := mustCreateGroup(t, svc, mod, "General", domain.RoleUser)
	other := mustCreateGroup(t, svc, mod, "Other", domain.RoleUser)

	for i := 0; i < 3; i++ {
		if _, err := svc.SendMessage(ctx, user, group.ID, "msg"); err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
	}
	if _, err := svc.SendMessage(ctx, user, other.ID, "keep"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if _, err := svc.ClearGroupMessages(ctx, user, group.ID); err == nil {
		t.Error("clearing requires a moderator")
	}

	count, err := svc.ClearGroupMessages(ctx, mod, group.ID)
	if err != nil {
		t.Fatalf("ClearGroupMessages: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 cleared messages, got %d", count)
	}

	remaining, err := svc.ListGroupMessages(ctx, user, other.ID)
	if err != nil {
		t.Fatalf("ListGroupMessages: %v", err)
	}
	if len(remaining) != 1 {
		t.Errorf("other group's messages must survive, got %d", len(remaining))
	}
}

func TestDeleteGroupCascadesMessages(t *testing.T) {
	svc, users, groups, messages := newChatFixture()
	ctx := context.Background()

	admin := member(users, "admin", domain.RoleAdmin)
	user := member(users, "plain", domain.RoleUser)
	group := mustCreateGroup(t, svc, admin, "Doomed", domain.RoleUser)

	if _, err := svc.SendMessage(ctx, user, group.ID, "bye"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	mod := member(users, "mod", domain.RoleMod)
	if err := svc.DeleteGroup(ctx, mod, group.ID); err == nil {
		t.Error("group deletion is admin-only")
	}

	if err := svc.DeleteGroup(ctx, admin, group.ID); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	if _, err := groups.GetByID(ctx, group.ID); err == nil {
		t.Error("group should be gone")
	}
	if n, _ := messages.Count(ctx); n != 0 {
		t.Errorf("messages should cascade, %d left", n)
	}
}
