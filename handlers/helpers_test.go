package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cphub/cphub/backend/internal/config"
	"github.com/cphub/cphub/backend/internal/models"
	"github.com/cphub/cphub/backend/internal/users"
	"github.com/cphub/cphub/backend/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// fakeUserRepo is an in-memory users.UserRepository shared by handler tests.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c := *u
	c.ID = fmt.Sprintf("id-%d", f.nextID)
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	f.users[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "leetcodeUsername":
			u.LeetcodeUsername = s
		case "codeforcesUsername":
			u.CodeforcesUsername = s
		case "codechefUsername":
			u.CodechefUsername = s
		case "refreshToken":
			u.RefreshToken = s
		}
	}
	u.UpdatedAt = time.Now().UTC()
	c := *u
	return &c, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Tokens.AccessSecret = "handler-test-access-secret-000001"
	cfg.Tokens.RefreshSecret = "handler-test-refresh-secret-00001"
	cfg.Tokens.AccessTTL = 15 * time.Minute
	cfg.Tokens.RefreshTTL = 7 * 24 * time.Hour
	return cfg
}

// testRouter wires the auth and profile handlers against the fake repo the
// same way main does against Mongo.
func testRouter(cfg *config.Config, repo *fakeUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := users.NewService(repo)
	r := gin.New()
	api := r.Group("/api")
	NewAuthHandler(cfg, svc).Register(api)
	NewProfileHandler(svc).Register(api, middleware.RequireAuth(cfg.Tokens.AccessSecret))
	return r
}
