package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/repository"
)

// In-memory fakes standing in for Mongo, Brevo, S3 and Redis.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User

	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateKey
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.RefreshToken != "" && u.RefreshToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

// stored returns the persisted record, bypassing the copy semantics.
func (r *fakeUserRepo) stored(id primitive.ObjectID) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

type fakePizzaRepo struct {
	mu     sync.Mutex
	pizzas map[primitive.ObjectID]*models.Pizza

	createErr error
	updateErr error
}

func newFakePizzaRepo() *fakePizzaRepo {
	return &fakePizzaRepo{pizzas: map[primitive.ObjectID]*models.Pizza{}}
}

func (r *fakePizzaRepo) Create(ctx context.Context, p *models.Pizza) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.pizzas[p.ID] = &cp
	return nil
}

func (r *fakePizzaRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Pizza, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pizzas[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrPizzaNotFound
}

func (r *fakePizzaRepo) FindAll(ctx context.Context) ([]models.Pizza, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Pizza
	for _, p := range r.pizzas {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePizzaRepo) Update(ctx context.Context, p *models.Pizza) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.pizzas[p.ID]; !ok {
		return repository.ErrPizzaNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	r.pizzas[p.ID] = &cp
	return nil
}

func (r *fakePizzaRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pizzas[id]; !ok {
		return repository.ErrPizzaNotFound
	}
	delete(r.pizzas, id)
	return nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[primitive.ObjectID]*models.Cart{}}
}

func (r *fakeCartRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[userID]; ok {
		cp := *c
		cp.Items = append([]models.CartItem(nil), c.Items...)
		return &cp, nil
	}
	return nil, repository.ErrCartNotFound
}

func (r *fakeCartRepo) Save(ctx context.Context, c *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.Items = append([]models.CartItem(nil), c.Items...)
	r.carts[c.UserID] = &cp
	return nil
}

type fakeMailer struct {
	mu      sync.Mutex
	welcome []string
	codes   map[string]string // email -> last code sent

	sendErr error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{codes: map[string]string{}}
}

func (m *fakeMailer) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.welcome = append(m.welcome, toEmail)
	return nil
}

func (m *fakeMailer) SendVerificationOtp(ctx context.Context, toEmail, name, code string, ttl time.Duration) error {
	return m.record(toEmail, code)
}

func (m *fakeMailer) SendResetOtp(ctx context.Context, toEmail, name, code string, ttl time.Duration) error {
	return m.record(toEmail, code)
}

func (m *fakeMailer) record(toEmail, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.codes[toEmail] = code
	return nil
}

func (m *fakeMailer) lastCode(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

type fakeLimiter struct {
	mu    sync.Mutex
	calls map[string]int
	limit int
}

func newFakeLimiter(limit int) *fakeLimiter {
	return &fakeLimiter{calls: map[string]int{}, limit: limit}
}

func (l *fakeLimiter) Allow(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[key]++
	if l.calls[key] > l.limit {
		return ErrOtpRateLimited
	}
	return nil
}

type fakeImageStore struct {
	mu      sync.Mutex
	seq     int
	stored  map[string]string // key -> filename
	data    map[string][]byte // key -> uploaded bytes
	deleted []string

	failOn string // filename whose upload fails
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{stored: map[string]string{}, data: map[string][]byte{}}
}

func (s *fakeImageStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && filename == s.failOn {
		return "", "", errors.New("upload failed")
	}
	s.seq++
	key := fmt.Sprintf("pizza_images/%d-%s", s.seq, filename)
	s.stored[key] = filename
	s.data[key] = data
	return "https://media.test/" + key, key, nil
}

func (s *fakeImageStore) dataFor(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

func (s *fakeImageStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stored[key]; !ok {
		return errors.New("no such object")
	}
	delete(s.stored, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeImageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stored)
}
