package usecases

import (
	"context"
	"sync"

	"stagecast/internal/domain/stage"
	"stagecast/internal/domain/user"
	"stagecast/internal/shared/logger"
)

var testLogger = logger.NewLogger()

type fakeStageRepo struct {
	mu     sync.Mutex
	nextID uint
	stages map[uint]*stage.Stage
}

func newFakeStageRepo() *fakeStageRepo {
	return &fakeStageRepo{stages: map[uint]*stage.Stage{}}
}

func (r *fakeStageRepo) add(s *stage.Stage) *stage.Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	r.stages[s.ID] = s
	return s
}

func (r *fakeStageRepo) Create(ctx context.Context, s *stage.Stage) error {
	r.add(s)
	return nil
}

func (r *fakeStageRepo) GetByID(ctx context.Context, id uint) (*stage.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stages[id], nil
}

func (r *fakeStageRepo) GetBySID(ctx context.Context, sid string) (*stage.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stages {
		if s.SID == sid {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStageRepo) Update(ctx context.Context, s *stage.Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages[s.ID] = s
	return nil
}

func (r *fakeStageRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stages, id)
	return nil
}

func (r *fakeStageRepo) ListPublic(ctx context.Context, filter stage.ListFilter) ([]*stage.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*stage.Stage
	for _, s := range r.stages {
		if !s.Private {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStageRepo) ListPublicByOwner(ctx context.Context, ownerID uint, filter stage.ListFilter) ([]*stage.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*stage.Stage
	for _, s := range r.stages {
		if !s.Private && s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStageRepo) ListAccessible(ctx context.Context, userID uint, filter stage.ListFilter) ([]*stage.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*stage.Stage
	for _, s := range r.stages {
		if s.OwnerID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStageRepo) ListAccessibleByOwner(ctx context.Context, userID, ownerID uint, filter stage.ListFilter) ([]*stage.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*stage.Stage
	for _, s := range r.stages {
		if s.OwnerID == userID || s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeInviteRepo struct {
	mu      sync.Mutex
	nextID  uint
	invites map[uint]*stage.Invite
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: map[uint]*stage.Invite{}}
}

func (r *fakeInviteRepo) Create(ctx context.Context, inv *stage.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	inv.ID = r.nextID
	r.invites[inv.ID] = inv
	return nil
}

func (r *fakeInviteRepo) GetBySID(ctx context.Context, sid string) (*stage.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invites {
		if inv.SID == sid {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInviteRepo) ListByUserID(ctx context.Context, userID uint) ([]*stage.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*stage.Invite
	for _, inv := range r.invites {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInviteRepo) Exists(ctx context.Context, stageID, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invites {
		if inv.StageID == stageID && inv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInviteRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.invites, id)
	return nil
}

type fakeChatMessageRepo struct {
	mu       sync.Mutex
	nextID   uint
	messages []*stage.ChatMessage
}

func newFakeChatMessageRepo() *fakeChatMessageRepo {
	return &fakeChatMessageRepo{}
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, msg *stage.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	msg.ID = r.nextID
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeChatMessageRepo) ListByStageID(ctx context.Context, stageID uint, limit int) ([]*stage.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*stage.ChatMessage
	for _, msg := range r.messages {
		if msg.StageID == stageID {
			out = append(out, msg)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type participantUpdate struct {
	room       string
	identity   string
	canPublish bool
}

// fakeRoomClient records broadcasts and permission changes instead of
// calling the media server.
type fakeRoomClient struct {
	mu      sync.Mutex
	sent    [][]byte
	rooms   []string
	updates []participantUpdate
	sendErr error
}

func (c *fakeRoomClient) SendData(ctx context.Context, room string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.rooms = append(c.rooms, room)
	c.sent = append(c.sent, data)
	return nil
}

func (c *fakeRoomClient) UpdateParticipant(ctx context.Context, room, identity string, canPublish bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates = append(c.updates, participantUpdate{room: room, identity: identity, canPublish: canPublish})
	return nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*user.User{}}
}

func (r *fakeUserRepo) add(u *user.User) *user.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.add(u)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.SID == sid {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByProviderIdentity(ctx context.Context, provider, providerID string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Provider == provider && u.ProviderID == providerID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func testUser(sid string) *user.User {
	return &user.User{
		SID:       sid,
		Provider:  "github",
		Email:     sid + "@example.com",
		Username:  sid,
		AvatarURL: "https://avatars.example.com/" + sid,
	}
}
