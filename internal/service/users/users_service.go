// Package users manages back-office logins and their sessions.
package users

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/safaribooking/internal/auth"
	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/Domenick1991/safaribooking/internal/store"
)

type UserUseCase interface {
	List(ctx context.Context, query string) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	ChangePassword(ctx context.Context, id string, input ChangePasswordInput) error
	Delete(ctx context.Context, id string) error
}

type AuthUseCase interface {
	Login(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

type UserRepository interface {
	List() []domain.User
	Get(id string) (domain.User, bool)
	ByUsername(username string) (domain.User, bool)
	Add(username, password string) (domain.User, error)
	Update(id string, upd domain.UserUpdate) (domain.User, bool, error)
	ChangePassword(id, newPassword string) (domain.User, bool, error)
	Delete(id string) bool
	Len() int
	Match(username, password string) (domain.User, bool)
}

type TokenIssuer interface {
	Issue(userID, username string) (string, auth.Claims, error)
	Parse(token string) (auth.Claims, error)
	TTL() time.Duration
}

// Sessions tracks live token ids. Lookup returns "" for unknown or expired ids.
type Sessions interface {
	Open(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, tokenID string) (string, error)
	Close(ctx context.Context, tokenID string) error
}

type CreateUserInput struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type UpdateUserInput struct {
	Username        *string `json:"username,omitempty"`
	Password        *string `json:"password,omitempty"`
	ConfirmPassword *string `json:"confirm_password,omitempty"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid username or password"}

type UserService struct {
	// mu makes the uniqueness check and the write one step.
	mu       sync.Mutex
	users    UserRepository
	tokens   TokenIssuer
	sessions Sessions
}

func NewUserService(users *store.UserTable, tokens TokenIssuer, sessions Sessions) *UserService {
	return &UserService{users: users, tokens: tokens, sessions: sessions}
}

func (s *UserService) List(_ context.Context, query string) ([]domain.User, error) {
	rows := s.users.List()
	out := make([]domain.User, 0, len(rows))
	for _, u := range rows {
		if u.Matches(query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *UserService) Get(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users.Get(id)
	if !ok {
		return nil, domain.NotFoundError{Resource: "user", ID: id}
	}
	return &u, nil
}

func (s *UserService) Create(_ context.Context, input CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domain.ValidationError{Field: "username", Msg: "is required"}
	}
	if input.Password == "" {
		return nil, domain.ValidationError{Field: "password", Msg: "is required"}
	}
	if err := checkPasswordLength("password", input.Password); err != nil {
		return nil, err
	}
	if input.Password != input.ConfirmPassword {
		return nil, domain.ValidationError{Field: "confirm_password", Msg: "passwords do not match"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.users.ByUsername(username); taken {
		return nil, domain.ConflictError{Resource: "user", Msg: fmt.Sprintf("username %q already exists", username)}
	}
	u, err := s.users.Add(username, input.Password)
	if err != nil {
		return nil, err
	}
	log.Printf("[USERS] action=create id=%s username=%s", u.ID, u.Username)
	return &u, nil
}

// Update renames the user and/or resets the password without asking for the
// current one.
func (s *UserService) Update(_ context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	upd := domain.UserUpdate{}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, domain.ValidationError{Field: "username", Msg: "is required"}
		}
		upd.Username = &username
	}
	if input.Password != nil && *input.Password != "" {
		if err := checkPasswordLength("password", *input.Password); err != nil {
			return nil, err
		}
		if input.ConfirmPassword == nil || *input.ConfirmPassword != *input.Password {
			return nil, domain.ValidationError{Field: "confirm_password", Msg: "passwords do not match"}
		}
		upd.Password = input.Password
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users.Get(id); !ok {
		return nil, domain.NotFoundError{Resource: "user", ID: id}
	}
	if upd.Username != nil {
		if other, taken := s.users.ByUsername(*upd.Username); taken && other.ID != id {
			return nil, domain.ConflictError{Resource: "user", Msg: fmt.Sprintf("username %q already exists", *upd.Username)}
		}
	}
	u, ok, err := s.users.Update(id, upd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFoundError{Resource: "user", ID: id}
	}
	log.Printf("[USERS] action=update id=%s username=%s", u.ID, u.Username)
	return &u, nil
}

func (s *UserService) ChangePassword(_ context.Context, id string, input ChangePasswordInput) error {
	switch {
	case input.CurrentPassword == "":
		return domain.ValidationError{Field: "current_password", Msg: "is required"}
	case input.NewPassword == "":
		return domain.ValidationError{Field: "new_password", Msg: "is required"}
	case len(input.NewPassword) > store.MaxPasswordBytes:
		return checkPasswordLength("new_password", input.NewPassword)
	case input.NewPassword != input.ConfirmPassword:
		return domain.ValidationError{Field: "confirm_password", Msg: "passwords do not match"}
	case input.NewPassword == input.CurrentPassword:
		return domain.ValidationError{Field: "new_password", Msg: "must differ from the current password"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users.Get(id)
	if !ok {
		return domain.NotFoundError{Resource: "user", ID: id}
	}
	if !store.CheckPassword(u, input.CurrentPassword) {
		return domain.ValidationError{Field: "current_password", Msg: "is incorrect"}
	}
	if _, _, err := s.users.ChangePassword(id, input.NewPassword); err != nil {
		return err
	}
	log.Printf("[USERS] action=change_password id=%s", id)
	return nil
}

// Delete refuses to remove the last remaining user.
func (s *UserService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users.Get(id); !ok {
		return domain.NotFoundError{Resource: "user", ID: id}
	}
	if s.users.Len() <= 1 {
		return domain.ConflictError{Resource: "user", Msg: "cannot delete the last user"}
	}
	s.users.Delete(id)
	log.Printf("[USERS] action=delete id=%s", id)
	return nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, errBadCredentials
	}
	u, ok := s.users.Match(username, password)
	if !ok {
		log.Printf("[AUTH] action=login username=%s result=denied", username)
		return nil, errBadCredentials
	}

	token, claims, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Open(ctx, claims.ID, u.ID, s.tokens.TTL()); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	log.Printf("[AUTH] action=login username=%s result=ok", username)
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: u}, nil
}

// Logout revokes the session behind token. Unknown sessions are not an error.
func (s *UserService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}
	if err := s.sessions.Close(ctx, claims.ID); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	log.Printf("[AUTH] action=logout user_id=%s", claims.UserID)
	return nil
}

// Verify accepts a token only while its session is live and its user still exists.
func (s *UserService) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}
	userID, err := s.sessions.Lookup(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if userID == "" || userID != claims.UserID {
		return nil, domain.UnauthorizedError{Msg: "session expired", Err: errors.New("no live session")}
	}
	if _, ok := s.users.Get(claims.UserID); !ok {
		return nil, domain.UnauthorizedError{Msg: "user no longer exists"}
	}
	return &claims, nil
}

// checkPasswordLength rejects passwords bcrypt cannot hash.
func checkPasswordLength(field, password string) error {
	if len(password) > store.MaxPasswordBytes {
		return domain.ValidationError{Field: field, Msg: fmt.Sprintf("must be at most %d bytes", store.MaxPasswordBytes)}
	}
	return nil
}

var (
	_ UserUseCase = (*UserService)(nil)
	_ AuthUseCase = (*UserService)(nil)
)
