// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"relay-messenger/internal/domain/chat"
	"relay-messenger/internal/domain/message"
	"relay-messenger/internal/domain/notification"
	"relay-messenger/internal/domain/settings"
	"relay-messenger/internal/domain/user"
	"relay-messenger/internal/repository"
	relay_errors "relay-messenger/pkg/errors"
)

var (
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.ChatRepository         = (*ChatRepo)(nil)
	_ repository.MessageRepository      = (*MessageRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
	_ repository.SettingsRepository     = (*SettingsRepo)(nil)
)

type UserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]user.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: map[int64]user.User{}}
}

// Add stores a user and returns it with its id.
func (r *UserRepo) Add(phone, name string) user.User {
	u := user.User{Phone: phone, Name: name}
	_ = r.Create(context.Background(), &u)
	return u
}

func (r *UserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Phone == u.Phone {
			return fmt.Errorf("%w: a user with this phone already exists", relay_errors.ErrAlreadyExists)
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, fmt.Errorf("%w: user not found", relay_errors.ErrNotFound)
	}
	return u, nil
}

func (r *UserRepo) GetByPhone(_ context.Context, phone string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return user.User{}, fmt.Errorf("%w: user not found", relay_errors.ErrNotFound)
}

func (r *UserRepo) MarkOnline(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("%w: user not found", relay_errors.ErrNotFound)
	}
	u.IsOnline = true
	u.LastSeen = &at
	r.users[id] = u
	return nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, id int64, patch user.ProfilePatch) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, fmt.Errorf("%w: user not found", relay_errors.ErrNotFound)
	}
	for field, value := range patch {
		v := value
		switch field {
		case user.FieldName:
			u.Name = v
		case user.FieldBio:
			u.Bio = &v
		case user.FieldAvatarURL:
			u.AvatarURL = &v
		}
	}
	r.users[id] = u
	return u, nil
}

func (r *UserRepo) ListExcept(_ context.Context, id int64) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []user.User{}
	for _, u := range r.users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ChatRepo runs transactions inline without rollback.
type ChatRepo struct {
	mu           sync.Mutex
	nextID       int64
	chats        map[int64]chat.Chat
	participants []chat.Participant

	// LockedPairs records every LockPair call.
	LockedPairs [][2]int64
	// FailAddAfter makes AddParticipant fail once this many participants
	// exist. Negative disables it.
	FailAddAfter int
}

func NewChatRepo() *ChatRepo {
	return &ChatRepo{chats: map[int64]chat.Chat{}, FailAddAfter: -1}
}

func (r *ChatRepo) Transaction(_ context.Context, fn func(repo repository.ChatRepository) error) error {
	return fn(r)
}

func (r *ChatRepo) LockPair(_ context.Context, a, b int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.LockedPairs = append(r.LockedPairs, [2]int64{a, b})
	return nil
}

func (r *ChatRepo) FindDirectChat(_ context.Context, a, b int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.sortedIDsLocked() {
		if r.chats[id].IsGroup {
			continue
		}
		members := r.membersLocked(id)
		if len(members) == 2 && members[a] && members[b] {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: chat not found", relay_errors.ErrNotFound)
}

func (r *ChatRepo) Create(_ context.Context, c *chat.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.chats[c.ID] = *c
	return nil
}

func (r *ChatRepo) AddParticipant(_ context.Context, p *chat.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailAddAfter >= 0 && len(r.participants) >= r.FailAddAfter {
		return fmt.Errorf("insert participant: connection reset")
	}
	r.participants = append(r.participants, *p)
	return nil
}

// ListSummaries returns the user's chats newest id first. It fills only the
// chat columns and the participant count.
func (r *ChatRepo) ListSummaries(_ context.Context, userID int64) ([]chat.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []chat.Summary{}
	ids := r.sortedIDsLocked()
	for i := len(ids) - 1; i >= 0; i-- {
		c := r.chats[ids[i]]
		members := r.membersLocked(c.ID)
		if !members[userID] {
			continue
		}
		out = append(out, chat.Summary{
			ID:                c.ID,
			Name:              c.Name,
			IsGroup:           c.IsGroup,
			AvatarURL:         c.AvatarURL,
			UpdatedAt:         c.UpdatedAt,
			ParticipantsCount: int64(len(members)),
		})
	}
	return out, nil
}

// Chat returns a stored chat.
func (r *ChatRepo) Chat(id int64) (chat.Chat, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[id]
	return c, ok
}

func (r *ChatRepo) ChatCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chats)
}

// ParticipantsOf returns the chat's participants in insertion order.
func (r *ChatRepo) ParticipantsOf(chatID int64) []chat.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []chat.Participant
	for _, p := range r.participants {
		if p.ChatID == chatID {
			out = append(out, p)
		}
	}
	return out
}

func (r *ChatRepo) sortedIDsLocked() []int64 {
	ids := make([]int64, 0, len(r.chats))
	for id := range r.chats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *ChatRepo) membersLocked(chatID int64) map[int64]bool {
	members := map[int64]bool{}
	for _, p := range r.participants {
		if p.ChatID == chatID {
			members[p.UserID] = true
		}
	}
	return members
}

// MessageRepo joins senders from Users when it is set.
type MessageRepo struct {
	mu       sync.Mutex
	nextID   int64
	messages []message.Message

	Users *UserRepo
}

func NewMessageRepo(users *UserRepo) *MessageRepo {
	return &MessageRepo{Users: users}
}

func (r *MessageRepo) Create(_ context.Context, m *message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	r.messages = append(r.messages, *m)
	return nil
}

func (r *MessageRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func (r *MessageRepo) ListByChat(ctx context.Context, chatID int64, limit, offset int) ([]message.View, error) {
	r.mu.Lock()
	var inChat []message.Message
	for _, m := range r.messages {
		if m.ChatID == chatID {
			inChat = append(inChat, m)
		}
	}
	r.mu.Unlock()

	sort.Slice(inChat, func(i, j int) bool {
		if !inChat[i].CreatedAt.Equal(inChat[j].CreatedAt) {
			return inChat[i].CreatedAt.After(inChat[j].CreatedAt)
		}
		return inChat[i].ID > inChat[j].ID
	})
	if offset >= len(inChat) {
		return []message.View{}, nil
	}
	inChat = inChat[offset:]
	if limit < len(inChat) {
		inChat = inChat[:limit]
	}

	views := make([]message.View, 0, len(inChat))
	for _, m := range inChat {
		v := message.View{Message: m}
		if r.Users != nil {
			if u, err := r.Users.GetByID(ctx, m.SenderID); err == nil {
				name := u.Name
				v.SenderName = &name
				v.SenderAvatar = u.AvatarURL
			}
		}
		views = append(views, v)
	}
	return views, nil
}

type NotificationRepo struct {
	mu     sync.Mutex
	nextID int64
	subs   []notification.PushSubscription
}

func NewNotificationRepo() *NotificationRepo {
	return &NotificationRepo{}
}

func (r *NotificationRepo) Upsert(_ context.Context, sub *notification.PushSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.subs {
		if existing.UserID == sub.UserID && existing.Endpoint == sub.Endpoint {
			r.subs[i].P256dh = sub.P256dh
			r.subs[i].Auth = sub.Auth
			*sub = r.subs[i]
			return nil
		}
	}
	r.nextID++
	sub.ID = r.nextID
	sub.CreatedAt = time.Now()
	r.subs = append(r.subs, *sub)
	return nil
}

func (r *NotificationRepo) ListByUser(_ context.Context, userID int64) ([]notification.PushSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []notification.PushSubscription{}
	for _, s := range r.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type SettingsRepo struct {
	mu   sync.Mutex
	rows map[int64]settings.UserSettings
}

func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{rows: map[int64]settings.UserSettings{}}
}

func (r *SettingsRepo) GetOrCreate(_ context.Context, userID int64) (settings.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[userID]
	if !ok {
		row = settings.Defaults(userID)
		row.ID = int64(len(r.rows) + 1)
		row.UpdatedAt = time.Now()
		r.rows[userID] = row
	}
	return row, nil
}

func (r *SettingsRepo) Upsert(_ context.Context, userID int64, patch settings.Patch) (settings.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[userID]
	if !ok {
		row = settings.Defaults(userID)
		row.ID = int64(len(r.rows) + 1)
	}
	row.Apply(patch)
	row.UpdatedAt = time.Now()
	r.rows[userID] = row
	return row, nil
}

// Rows returns how many settings rows exist.
func (r *SettingsRepo) Rows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// ObjectStore keeps uploaded objects in memory. Err, when set, fails every put.
type ObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string

	Err error
}

func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *ObjectStore) PutObject(_ context.Context, key, contentType string, body []byte) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	s.types[key] = contentType
	return nil
}

func (s *ObjectStore) FileURL(key string) string {
	return "https://cdn.example.test/bucket/" + key
}

// Object returns the stored bytes and content type of key.
func (s *ObjectStore) Object(key string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.objects[key]
	return body, s.types[key], ok
}

func (s *ObjectStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
