package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/warehouse-suite/user-service/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by username
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByCode(_ context.Context, code string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Code == code {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.users[user.Username] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	return all, nil
}

func (r *stubUserRepo) Update(_ context.Context, filter, update map[string]any) (*domain.User, error) {
	code, _ := filter["cod_user"].(string)
	set, _ := update["$set"].(map[string]any)
	for username, u := range r.users {
		if u.Code != code || code == "" {
			continue
		}
		if newUsername, ok := set["username"].(string); ok {
			delete(r.users, username)
			u.Username = newUsername
			r.users[newUsername] = u
		}
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func newUser() domain.User {
	return domain.User{
		Code:     "000867",
		Username: "Pietro0096",
		Password: "plain",
		Name:     "Pietro",
		Surname:  "Lelli",
	}
}

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, "secret", time.Hour)

	created, token, err := svc.Register(context.Background(), newUser())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	if created.Password == "plain" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("plain")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if created.Role != domain.DefaultRole {
		t.Fatalf("expected default role, got %q", created.Role)
	}

	// A subsequent lookup by username returns the persisted account.
	found, err := repo.FindByUsername(context.Background(), "Pietro0096")
	if err != nil {
		t.Fatalf("lookup after register failed: %v", err)
	}
	if found.Name != "Pietro" || found.Surname != "Lelli" {
		t.Fatalf("unexpected persisted user: %+v", found)
	}
}

func TestUserService_Register_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, "secret", time.Hour)

	clears := []func(*domain.User){
		func(u *domain.User) { u.Code = "" },
		func(u *domain.User) { u.Username = "" },
		func(u *domain.User) { u.Password = "" },
		func(u *domain.User) { u.Name = "" },
		func(u *domain.User) { u.Surname = "" },
	}
	for i, clear := range clears {
		u := newUser()
		clear(&u)
		if _, _, err := svc.Register(context.Background(), u); err != domain.ErrInvalidUserData {
			t.Fatalf("case %d: expected ErrInvalidUserData, got %v", i, err)
		}
	}
	if len(repo.users) != 0 {
		t.Fatalf("no document should have been created, got %d", len(repo.users))
	}
}

func TestUserService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), newUser()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	again := newUser()
	again.Code = "000999"
	if _, _, err := svc.Register(context.Background(), again); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("collection count changed on conflict: %d", len(repo.users))
	}
}

func TestUserService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), newUser()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "Pietro0096", "plain")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Code != "000867" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), newUser()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown username must be indistinguishable.
	_, _, wrongPass := svc.Login(context.Background(), "Pietro0096", "nope")
	_, _, unknown := svc.Login(context.Background(), "ghost", "plain")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if unknown != wrongPass {
		t.Fatalf("failure causes are distinguishable: %v vs %v", wrongPass, unknown)
	}
}

func TestUserService_TokenClaims(t *testing.T) {
	repo := newStubUserRepo()
	ttl := 30 * 24 * time.Hour
	svc := NewUserService(repo, "secret", ttl)

	_, token, err := svc.Register(context.Background(), newUser())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["id"] != "000867" {
		t.Fatalf("expected id claim to carry the user code, got %v", claims["id"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("token has no expiry claim")
	}
	want := time.Now().Add(ttl).Unix()
	if got := int64(exp); got < want-60 || got > want+60 {
		t.Fatalf("expiry not wired to TTL: got %d, want ~%d", got, want)
	}
}

func TestUserService_GetByCode_NotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, "secret", time.Hour)

	if _, err := svc.GetByCode(context.Background(), "000965"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, "secret", time.Hour)

	first := newUser()
	second := newUser()
	second.Code, second.Username = "000897", "Martin0075"
	if _, _, err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), second); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != len(repo.users) {
		t.Fatalf("expected %d users, got %d", len(repo.users), len(users))
	}
}

func TestStubRepo_UpdateByFilter(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), newUser()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := repo.Update(context.Background(),
		map[string]any{"cod_user": "000867"},
		map[string]any{"$set": map[string]any{"username": "Mutto97"}})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Username != "Mutto97" {
		t.Fatalf("expected updated username, got %q", updated.Username)
	}

	if _, err := repo.Update(context.Background(),
		map[string]any{"cod_user": ""},
		map[string]any{"$set": map[string]any{"username": "Mutto97"}}); err != domain.ErrUserNotFound {
		t.Fatalf("empty filter must not signal success, got %v", err)
	}
}
