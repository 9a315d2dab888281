package service

import (
	"context"
	"testing"

	"github.com/agencyhub/community-service/internal/domain"
)

func newTicketFixture() (*TicketService, *fakeUserRepo, *fakeTicketRepo) {
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo()
	return NewTicketService(tickets, nil), users, tickets
}

func TestCreateTicketValidation(t *testing.T) {
	svc, users, _ := newTicketFixture()
	user := member(users, "plain", domain.RoleUser)

	if _, err := svc.Create(context.Background(), user, "", "body"); err == nil {
		t.Error("subject is required")
	}
	if _, err := svc.Create(context.Background(), user, "subject", "  "); err == nil {
		t.Error("message is required")
	}

	ticket, err := svc.Create(context.Background(), user, "  Help  ", "It broke")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.Subject != "Help" {
		t.Errorf("subject should be trimmed, got %q", ticket.Subject)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("new tickets start open, got %s", ticket.Status)
	}
	if ticket.UserID != user.ID {
		t.Error("ticket should belong to the requester")
	}
}

func TestTicketListScoping(t *testing.T) {
	svc, users, _ := newTicketFixture()
	ctx := context.Background()

	alice := member(users, "alice", domain.RoleUser)
	bob := member(users, "bob", domain.RoleUser)
	mod := member(users, "mod", domain.RoleMod)

	if _, err := svc.Create(ctx, alice, "a", "a"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, bob, "b", "b"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	own, err := svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(own) != 1 || own[0].UserID != alice.ID {
		t.Errorf("members see only their own tickets, got %d", len(own))
	}

	all, err := svc.List(ctx, mod)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("moderators see every ticket, got %d", len(all))
	}
}

func TestTicketStatusLifecycle(t *testing.T) {
	svc, users, _ := newTicketFixture()
	ctx := context.Background()

	alice := member(users, "alice", domain.RoleUser)
	mod := member(users, "mod", domain.RoleMod)

	ticket, err := svc.Create(ctx, alice, "subject", "body")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, alice, ticket.ID, domain.TicketStatusResolved); err == nil {
		t.Error("status changes require a moderator")
	}
	if _, err := svc.UpdateStatus(ctx, mod, ticket.ID, domain.TicketStatus("bogus")); err == nil {
		t.Error("unknown statuses are rejected")
	}

	updated, err := svc.UpdateStatus(ctx, mod, ticket.ID, domain.TicketStatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != domain.TicketStatusInProgress {
		t.Errorf("status not applied, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(ctx, mod, "missing", domain.TicketStatusClosed); err == nil {
		t.Error("unknown ticket ids yield not found")
	}
}

func TestTicketDeleteModeratorOnly(t *testing.T) {
	svc, users, _ := newTicketFixture()
	ctx := context.Background()

	alice := member(users, "alice", domain.RoleUser)
	mod := member(users, "mod", domain.RoleMod)

	ticket, err := svc.Create(ctx, alice, "subject", "body")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, alice, ticket.ID); err == nil {
		t.Error("members may not delete tickets, not even their own")
	}
	if err := svc.Delete(ctx, mod, ticket.ID); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestTicketRecentLimit(t *testing.T) {
	svc, users, _ := newTicketFixture()
	ctx := context.Background()
	alice := member(users, "alice", domain.RoleUser)

	for i := 0; i < 12; i++ {
		if _, err := svc.Create(ctx, alice, "s", "m"); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	recent, err := svc.Recent(ctx)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 10 {
		t.Errorf("recent is capped at 10, got %d", len(recent))
	}
	if recent[0].ID == recent[len(recent)-1].ID {
		t.Error("expected distinct tickets")
	}
}
