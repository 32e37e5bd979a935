package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

type userPatch struct {
	username *string
	hash     *string
}

func (p userPatch) Apply(u *domain.User) {
	if p.username != nil {
		u.Username = *p.username
	}
	if p.hash != nil {
		u.PasswordHash = *p.hash
	}
}

// UserTable stores logins with bcrypt-hashed passwords. It does not enforce
// username uniqueness; callers check ByUsername before writing.
//
// Errors returned by the write methods only ever come from hashing.
type UserTable struct {
	table *Table[domain.User, userPatch]
	cost  int
}

func newUserTable(newID func() string, now func() time.Time, cost int) *UserTable {
	return &UserTable{
		table: newTable[domain.User, userPatch, *domain.User](newID, now),
		cost:  cost,
	}
}

func (t *UserTable) List() []domain.User {
	return t.table.List()
}

func (t *UserTable) Get(id string) (domain.User, bool) {
	return t.table.Get(id)
}

// ByUsername returns the first user whose username equals username exactly.
func (t *UserTable) ByUsername(username string) (domain.User, bool) {
	matches := t.table.Find(func(u domain.User) bool {
		return u.Username == username
	})
	if len(matches) == 0 {
		return domain.User{}, false
	}
	return matches[0], true
}

func (t *UserTable) Add(username, password string) (domain.User, error) {
	hash, err := t.hash(password)
	if err != nil {
		return domain.User{}, err
	}
	return t.table.Add(domain.User{Username: username, PasswordHash: hash}), nil
}

func (t *UserTable) Update(id string, upd domain.UserUpdate) (domain.User, bool, error) {
	patch := userPatch{username: upd.Username}
	if upd.Password != nil {
		hash, err := t.hash(*upd.Password)
		if err != nil {
			return domain.User{}, false, err
		}
		patch.hash = &hash
	}
	u, ok := t.table.Update(id, patch)
	return u, ok, nil
}

// ChangePassword overwrites the credential and nothing else.
func (t *UserTable) ChangePassword(id, newPassword string) (domain.User, bool, error) {
	return t.Update(id, domain.UserUpdate{Password: &newPassword})
}

func (t *UserTable) Delete(id string) bool {
	return t.table.Delete(id)
}

func (t *UserTable) Len() int {
	return t.table.Len()
}

// Authenticate is true iff a user with exactly this username has this password.
func (t *UserTable) Authenticate(username, password string) bool {
	_, ok := t.Match(username, password)
	return ok
}

// Match returns the first user whose username and password both match.
// Usernames may repeat, so every user with that name is tried.
func (t *UserTable) Match(username, password string) (domain.User, bool) {
	candidates := t.table.Find(func(u domain.User) bool {
		return u.Username == username
	})
	for _, u := range candidates {
		if CheckPassword(u, password) {
			return u, true
		}
	}
	return domain.User{}, false
}

// CheckPassword compares password against u's stored credential.
func CheckPassword(u domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (t *UserTable) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), t.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)}
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
