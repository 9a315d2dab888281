package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agencyhub/community-service/internal/domain"
)

// In-memory repository fakes. They mimic the Postgres implementations'
// contract, pgx.ErrNoRows included, so services can be exercised without
// a database.

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	if user.ID == "" {
		r.nextID++
		user.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	copied := *user
	r.users[user.ID] = &copied
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.users[id])
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeGroupRepo struct {
	groups map[string]*domain.ChatGroup
	order  []string
	nextID int
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: map[string]*domain.ChatGroup{}}
}

func (r *fakeGroupRepo) Create(_ context.Context, group *domain.ChatGroup) error {
	r.nextID++
	group.ID = fmt.Sprintf("group-%d", r.nextID)
	group.CreatedAt = time.Now()
	copied := *group
	r.groups[group.ID] = &copied
	r.order = append(r.order, group.ID)
	return nil
}

func (r *fakeGroupRepo) GetByID(_ context.Context, id string) (*domain.ChatGroup, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *group
	return &copied, nil
}

func (r *fakeGroupRepo) List(_ context.Context) ([]domain.ChatGroup, error) {
	out := make([]domain.ChatGroup, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.groups[id])
	}
	return out, nil
}

func (r *fakeGroupRepo) FindPrivateByParticipants(_ context.Context, userA, userB string) (*domain.ChatGroup, error) {
	for _, id := range r.order {
		group := r.groups[id]
		if group.IsPrivate && group.HasParticipant(userA) && group.HasParticipant(userB) {
			copied := *group
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeGroupRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.groups[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.groups, id)
	for i, gid := range r.order {
		if gid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeMessageRepo struct {
	messages map[string]*domain.ChatMessage
	order    []string
	nextID   int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[string]*domain.ChatMessage{}}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *domain.ChatMessage) error {
	r.nextID++
	message.ID = fmt.Sprintf("msg-%d", r.nextID)
	message.CreatedAt = time.Now()
	copied := *message
	r.messages[message.ID] = &copied
	r.order = append(r.order, message.ID)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id string) (*domain.ChatMessage, error) {
	message, ok := r.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *message
	return &copied, nil
}

func (r *fakeMessageRepo) ListByGroup(_ context.Context, groupID string) ([]domain.ChatMessage, error) {
	out := []domain.ChatMessage{}
	for _, id := range r.order {
		if r.messages[id].GroupID == groupID {
			out = append(out, *r.messages[id])
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) UpdateContent(_ context.Context, id, content string) (*domain.ChatMessage, error) {
	message, ok := r.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	message.Content = content
	copied := *message
	return &copied, nil
}

func (r *fakeMessageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.messages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.messages, id)
	for i, mid := range r.order {
		if mid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeMessageRepo) DeleteByGroup(_ context.Context, groupID string) (int64, error) {
	var removed int64
	kept := r.order[:0]
	for _, id := range r.order {
		if r.messages[id].GroupID == groupID {
			delete(r.messages, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return removed, nil
}

func (r *fakeMessageRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.messages)), nil
}

type fakeConversationRepo struct {
	conversations map[string]*domain.PrivateConversation
	order         []string
	nextID        int
	insertRaces   int // when > 0, Insert pretends a concurrent writer won
	racedPair     [2]string
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: map[string]*domain.PrivateConversation{}}
}

func (r *fakeConversationRepo) Insert(_ context.Context, conv *domain.PrivateConversation) error {
	if r.insertRaces > 0 {
		r.insertRaces--
		// Simulate the unique-index loser: the winner's row appears.
		r.nextID++
		id := fmt.Sprintf("conv-%d", r.nextID)
		winner := &domain.PrivateConversation{
			ID:             id,
			Participant1ID: r.racedPair[0],
			Participant2ID: r.racedPair[1],
			LastMessageAt:  time.Now(),
			CreatedAt:      time.Now(),
		}
		r.conversations[id] = winner
		r.order = append(r.order, id)
		return pgx.ErrNoRows
	}
	r.nextID++
	conv.ID = fmt.Sprintf("conv-%d", r.nextID)
	conv.CreatedAt = time.Now()
	conv.LastMessageAt = conv.CreatedAt
	copied := *conv
	r.conversations[conv.ID] = &copied
	r.order = append(r.order, conv.ID)
	return nil
}

func (r *fakeConversationRepo) FindByPair(_ context.Context, userA, userB string) (*domain.PrivateConversation, error) {
	for _, id := range r.order {
		conv := r.conversations[id]
		if (conv.Participant1ID == userA && conv.Participant2ID == userB) ||
			(conv.Participant1ID == userB && conv.Participant2ID == userA) {
			copied := *conv
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id string) (*domain.PrivateConversation, error) {
	conv, ok := r.conversations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *conv
	return &copied, nil
}

func (r *fakeConversationRepo) ListByUser(_ context.Context, userID string) ([]domain.PrivateConversation, error) {
	out := []domain.PrivateConversation{}
	for _, id := range r.order {
		conv := r.conversations[id]
		if conv.Involves(userID) {
			out = append(out, *conv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

func (r *fakeConversationRepo) TouchLastMessage(_ context.Context, id string) error {
	conv, ok := r.conversations[id]
	if !ok {
		return pgx.ErrNoRows
	}
	conv.LastMessageAt = time.Now()
	return nil
}

type fakePrivateMessageRepo struct {
	messages map[string]*domain.PrivateMessage
	order    []string
	nextID   int
}

func newFakePrivateMessageRepo() *fakePrivateMessageRepo {
	return &fakePrivateMessageRepo{messages: map[string]*domain.PrivateMessage{}}
}

func (r *fakePrivateMessageRepo) Create(_ context.Context, message *domain.PrivateMessage) error {
	r.nextID++
	message.ID = fmt.Sprintf("pm-%d", r.nextID)
	message.CreatedAt = time.Now()
	copied := *message
	r.messages[message.ID] = &copied
	r.order = append(r.order, message.ID)
	return nil
}

func (r *fakePrivateMessageRepo) GetByID(_ context.Context, id string) (*domain.PrivateMessage, error) {
	message, ok := r.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *message
	return &copied, nil
}

func (r *fakePrivateMessageRepo) ListByConversation(_ context.Context, conversationID string) ([]domain.PrivateMessage, error) {
	out := []domain.PrivateMessage{}
	for _, id := range r.order {
		if r.messages[id].ConversationID == conversationID {
			out = append(out, *r.messages[id])
		}
	}
	return out, nil
}

func (r *fakePrivateMessageRepo) UpdateContent(_ context.Context, id, content string) (*domain.PrivateMessage, error) {
	message, ok := r.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	message.Content = content
	copied := *message
	return &copied, nil
}

func (r *fakePrivateMessageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.messages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.messages, id)
	return nil
}

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	order   []string
	nextID  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", r.nextID)
	ticket.CreatedAt = time.Now()
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	r.order = append(r.order, ticket.ID)
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) List(_ context.Context) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, *r.tickets[r.order[i]])
	}
	return out, nil
}

func (r *fakeTicketRepo) ListByUser(_ context.Context, userID string) ([]domain.Ticket, error) {
	out := []domain.Ticket{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if r.tickets[r.order[i]].UserID == userID {
			out = append(out, *r.tickets[r.order[i]])
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) ListRecent(ctx context.Context, limit int) ([]domain.Ticket, error) {
	all, _ := r.List(ctx)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ticket.Status = status
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	for i, tid := range r.order {
		if tid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeTicketRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tickets)), nil
}

type fakeSettingRepo struct {
	values map[string]string
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{values: map[string]string{}}
}

func (r *fakeSettingRepo) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := r.values[key]
	return value, ok, nil
}

func (r *fakeSettingRepo) Set(_ context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

type fakeAnnouncementRepo struct {
	announcements map[string]*domain.Announcement
	order         []string
	nextID        int
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{announcements: map[string]*domain.Announcement{}}
}

func (r *fakeAnnouncementRepo) Create(_ context.Context, announcement *domain.Announcement) error {
	r.nextID++
	announcement.ID = fmt.Sprintf("ann-%d", r.nextID)
	announcement.CreatedAt = time.Now()
	copied := *announcement
	r.announcements[announcement.ID] = &copied
	r.order = append(r.order, announcement.ID)
	return nil
}

func (r *fakeAnnouncementRepo) List(_ context.Context) ([]domain.Announcement, error) {
	out := make([]domain.Announcement, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, *r.announcements[r.order[i]])
	}
	return out, nil
}

func (r *fakeAnnouncementRepo) GetActive(_ context.Context) (*domain.Announcement, error) {
	for i := len(r.order) - 1; i >= 0; i-- {
		if r.announcements[r.order[i]].IsActive {
			copied := *r.announcements[r.order[i]]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAnnouncementRepo) DeactivateAll(_ context.Context) error {
	for _, announcement := range r.announcements {
		announcement.IsActive = false
	}
	return nil
}

func (r *fakeAnnouncementRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.announcements[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.announcements, id)
	for i, aid := range r.order {
		if aid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeBannerRepo struct {
	banners map[string]*domain.Banner
	order   []string
	nextID  int
}

func newFakeBannerRepo() *fakeBannerRepo {
	return &fakeBannerRepo{banners: map[string]*domain.Banner{}}
}

func (r *fakeBannerRepo) Create(_ context.Context, banner *domain.Banner) error {
	r.nextID++
	banner.ID = fmt.Sprintf("banner-%d", r.nextID)
	banner.CreatedAt = time.Now()
	copied := *banner
	r.banners[banner.ID] = &copied
	r.order = append(r.order, banner.ID)
	return nil
}

func (r *fakeBannerRepo) Update(_ context.Context, banner *domain.Banner) error {
	if _, ok := r.banners[banner.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *banner
	r.banners[banner.ID] = &copied
	return nil
}

func (r *fakeBannerRepo) GetByID(_ context.Context, id string) (*domain.Banner, error) {
	banner, ok := r.banners[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *banner
	return &copied, nil
}

func (r *fakeBannerRepo) List(_ context.Context) ([]domain.Banner, error) {
	out := make([]domain.Banner, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.banners[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r *fakeBannerRepo) ListActive(ctx context.Context) ([]domain.Banner, error) {
	all, _ := r.List(ctx)
	out := []domain.Banner{}
	for _, banner := range all {
		if banner.IsActive {
			out = append(out, banner)
		}
	}
	return out, nil
}

func (r *fakeBannerRepo) MaxDisplayOrder(_ context.Context) (int, error) {
	max := 0
	for _, banner := range r.banners {
		if banner.DisplayOrder > max {
			max = banner.DisplayOrder
		}
	}
	return max, nil
}

func (r *fakeBannerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.banners[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.banners, id)
	return nil
}
