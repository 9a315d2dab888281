package persistence

import (
	"context"

	"go.uber.org/zap"

	"github.com/agencyhub/community-service/internal/auth"
	"github.com/agencyhub/community-service/internal/domain"
	"github.com/agencyhub/community-service/internal/repository"
)

type seedAccount struct {
	username    string
	password    string
	displayName string
	role        domain.Role
	level       int
}

var seedAccounts = []seedAccount{
	{username: "admin", password: "admin123", displayName: "Administrator", role: domain.RoleAdmin, level: 100},
	{username: "moderator", password: "mod123", displayName: "Moderator", role: domain.RoleMod, level: 50},
	{username: "vip", password: "vip123", displayName: "VIP Member", role: domain.RoleVIP, level: 10},
}

type seedGroup struct {
	name         string
	description  string
	requiredRole domain.Role
}

var seedGroups = []seedGroup{
	{name: "General Chat", description: "Open chat for all members", requiredRole: domain.RoleUser},
	{name: "VIP Lounge", description: "Exclusive chat for VIP members", requiredRole: domain.RoleVIP},
	{name: "Staff Room", description: "Moderators and admins only", requiredRole: domain.RoleMod},
}

// SeedInitialData creates the default accounts and chat groups on first
// start. It is a no-op once any user exists.
func SeedInitialData(ctx context.Context, logger *zap.Logger, users repository.UserRepository, groups repository.ChatGroupRepository, bcryptCost int) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var adminID string
	for _, account := range seedAccounts {
		hash, err := auth.HashPassword(account.password, bcryptCost)
		if err != nil {
			return err
		}
		user := &domain.User{
			Username:     account.username,
			PasswordHash: hash,
			DisplayName:  account.displayName,
			Role:         account.role,
			Level:        account.level,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		if account.role == domain.RoleAdmin {
			adminID = user.ID
		}
		logger.Info("seeded account", zap.String("username", account.username), zap.String("role", string(account.role)))
	}

	for _, g := range seedGroups {
		description := g.description
		group := &domain.ChatGroup{
			Name:         g.name,
			Description:  &description,
			RequiredRole: g.requiredRole,
			CreatedBy:    adminID,
		}
		if err := groups.Create(ctx, group); err != nil {
			return err
		}
	}

	logger.Warn("default credentials seeded, change them before exposing the service")
	return nil
}
