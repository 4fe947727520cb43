// Package account keeps local user records and the signed-in session in
// the same key-value surface as the dashboard data.
package account

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/crypto/bcrypt"

	"lockin/internal/entity"
)

const (
	KeyUsers   = "lockin_users"
	KeySession = "lockinUser"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLegacyPassword marks a record stored with a plaintext password.
	// It is never accepted; signing up again replaces it.
	ErrLegacyPassword = errors.New("account stored without a password hash")
)

type User struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	// Password is only ever decoded from documents written by the old
	// plaintext sign-up; scrub clears it before anything is persisted.
	Password     string `json:"password,omitempty"`
	LegacyRecord bool   `json:"legacy,omitempty"`
}

// Legacy reports whether u was written by the old plaintext sign-up.
func (u User) Legacy() bool {
	return u.PasswordHash == "" && (u.LegacyRecord || u.Password != "")
}

// scrub drops plaintext secrets, keeping only the legacy marker. It
// reports whether anything changed.
func scrub(users []User) bool {
	changed := false
	for i := range users {
		if users[i].Password == "" {
			continue
		}
		users[i].Password = ""
		if users[i].PasswordHash == "" {
			users[i].LegacyRecord = true
		}
		changed = true
	}
	return changed
}

func (u User) matches(identifier string) bool {
	return u.Username == identifier || (u.Email != "" && u.Email == identifier)
}

type Session struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Since    time.Time `json:"since"`
}

// load reads the users and rewrites the document at once when it still
// holds plaintext passwords.
func (a *Accounts) load() ([]User, error) {
	users, err := a.users.Load()
	if err != nil {
		return nil, err
	}
	if scrub(users) {
		a.log.Warn("removed plaintext passwords from legacy accounts")
		if err := a.users.Persist(users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// Backend is the key-value surface plus deletion for Logout.
type Backend interface {
	entity.Backend
	Delete(key string) error
}

var usersSchema = jsonschema.MustCompileString("https://lockin.local/schema/users.json", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["username"],
		"properties": {
			"username":     {"type": "string"},
			"email":        {"type": "string"},
			"passwordHash": {"type": "string"},
			"password":     {"type": "string"},
			"legacy":       {"type": "boolean"}
		}
	}
}`)

type Accounts struct {
	backend  Backend
	users    *entity.Document[[]User]
	session  *entity.Document[*Session]
	validate *validator.Validate
	cost     int
	now      func() time.Time
	log      *log.Logger
}

func New(b Backend, logger *log.Logger) *Accounts {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Accounts{
		backend:  b,
		users:    entity.NewDocument(b, KeyUsers, usersSchema, func() []User { return []User{} }, logger),
		session:  entity.NewDocument(b, KeySession, nil, func() *Session { return nil }, logger),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		log:      logger,
	}
}

// SetCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (a *Accounts) SetCost(cost int) {
	a.cost = cost
}

type signup struct {
	Username string `validate:"required"`
	Email    string `validate:"omitempty,email"`
	Password string `validate:"required,min=6"`
}

// Signup registers a new user. A legacy plaintext record with the same
// username is replaced by the hashed one.
func (a *Accounts) Signup(username, email, password string) (User, error) {
	in := signup{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := a.validate.Struct(in); err != nil {
		return User{}, fmt.Errorf("signup: %w", err)
	}

	users, err := a.load()
	if err != nil {
		return User{}, err
	}
	replace := -1
	for i, u := range users {
		if !u.matches(in.Username) && (in.Email == "" || !u.matches(in.Email)) {
			continue
		}
		if u.Legacy() && u.Username == in.Username {
			replace = i
			continue
		}
		return User{}, fmt.Errorf("%w: %s", ErrUserExists, in.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	user := User{Username: in.Username, Email: in.Email, PasswordHash: string(hash)}
	if replace >= 0 {
		users[replace] = user
	} else {
		users = append(users, user)
	}
	scrub(users)
	if err := a.users.Persist(users); err != nil {
		return User{}, err
	}
	a.log.Info("account created", "user", user.Username)
	return user, nil
}

// Login checks the password for the user whose username or email equals
// identifier and records the session.
func (a *Accounts) Login(identifier, password string) (Session, error) {
	identifier = strings.TrimSpace(identifier)
	users, err := a.load()
	if err != nil {
		return Session{}, err
	}
	for _, u := range users {
		if !u.matches(identifier) {
			continue
		}
		if u.Legacy() {
			a.log.Warn("refusing plaintext account", "user", u.Username)
			return Session{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, ErrLegacyPassword)
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			continue
		}
		s := Session{Username: u.Username, Email: u.Email, Since: a.now().UTC()}
		if err := a.session.Persist(&s); err != nil {
			return Session{}, err
		}
		return s, nil
	}
	return Session{}, ErrInvalidCredentials
}

// Current returns the signed-in session, if any.
func (a *Accounts) Current() (Session, bool, error) {
	s, err := a.session.Load()
	if err != nil || s == nil || s.Username == "" {
		return Session{}, false, err
	}
	return *s, true, nil
}

func (a *Accounts) Logout() error {
	return a.backend.Delete(KeySession)
}

// Legacy lists the usernames of accounts that predate hashed passwords.
// They cannot log in until signed up again.
func (a *Accounts) Legacy() ([]string, error) {
	users, err := a.load()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, u := range users {
		if u.Legacy() {
			names = append(names, u.Username)
		}
	}
	return names, nil
}
