package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/agencyhub/community-service/internal/domain"
	"github.com/agencyhub/community-service/internal/repository"
	apperrors "github.com/agencyhub/community-service/pkg/util/errorutil"
)

const currentUserKey = "auth_current_user"

// Middleware resolves the session cookie and loads the requesting user.
// The user record, role included, is re-read from the store on every
// request; nothing but the session id travels in the cookie.
type Middleware struct {
	sessions *SessionManager
	users    repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(sessions *SessionManager, users repository.UserRepository) *Middleware {
	return &Middleware{sessions: sessions, users: users}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	cookie := c.Cookies(m.sessions.CookieName())
	if cookie == "" {
		return apperrors.NewUnauthorized("missing session")
	}

	userID, err := m.sessions.Resolve(c.Context(), cookie)
	if err != nil {
		return apperrors.NewUnauthorized("invalid session")
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(currentUserKey, user)
	return c.Next()
}

// CurrentUser retrieves the authenticated user from the request context.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(currentUserKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
