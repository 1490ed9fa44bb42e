// Package app implements the core workshop operations: the auth gate,
// entity creation with referential-integrity checks, and the job-card
// pricing pathway.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"glassworks/internal/pricing"
	"glassworks/internal/store"
	"glassworks/pkg/auth"
	"glassworks/pkg/domain"
)

// DefaultAdminUsername is the well-known bootstrap account name.
const DefaultAdminUsername = "admin"

// defaultAdminPassword is used when no adminPassword is configured.
const defaultAdminPassword = "admin"

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	SessionTTL      time.Duration
	SessionStrategy string
	JWTSecret       string
	AdminPassword   string

	// Store and Sessions override the configured backends when set.
	Store    store.Store
	Sessions store.SessionStore
}

// App wires storage, sessions and pricing into the workshop operations.
type App struct {
	store         store.Store
	sessions      store.SessionStore
	adminPassword string
}

// New constructs the application with database storage and session management.
func New(cfg Config) (*App, error) {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = defaultAdminPassword
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL != "" {
			gormStore, err := store.NewGormStore(cfg.DatabaseURL)
			if err != nil {
				return nil, fmt.Errorf("init postgres store: %w", err)
			}
			dataStore = gormStore
		} else {
			slog.Warn("no databaseURL configured, records are kept in memory")
			dataStore = store.NewMemoryStore()
		}
	}

	sessionStore := cfg.Sessions
	if sessionStore == nil {
		var err error
		sessionStore, err = newSessionStore(cfg)
		if err != nil {
			return nil, err
		}
	}

	return &App{
		store:         dataStore,
		sessions:      sessionStore,
		adminPassword: cfg.AdminPassword,
	}, nil
}

func newSessionStore(cfg Config) (store.SessionStore, error) {
	strategy := strings.TrimSpace(cfg.SessionStrategy)
	if strategy == "" {
		if cfg.RedisAddr != "" {
			strategy = "redis"
		} else {
			strategy = "memory"
		}
	}
	switch strategy {
	case "redis":
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return nil, fmt.Errorf("redisAddr is required for redis session strategy")
		}
		return store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL), nil
	case "jwt":
		if strings.TrimSpace(cfg.JWTSecret) == "" {
			return nil, fmt.Errorf("jwtSecret is required for jwt session strategy")
		}
		return store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL), nil
	case "memory":
		return store.NewMemorySessionStore(cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown session strategy %q", strategy)
	}
}

// BootstrapDefaultAdmin creates the default admin account when no user
// named "admin" exists yet. Safe to call on every start.
func (a *App) BootstrapDefaultAdmin() error {
	_, ok, err := a.store.GetUserByUsername(DefaultAdminUsername)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if ok {
		return nil
	}
	passwordHash, err := auth.HashPassword(a.adminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user, err := a.store.CreateUser(domain.User{
		Username:     DefaultAdminUsername,
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	if a.adminPassword == defaultAdminPassword {
		slog.Warn("default admin created with well-known password, set adminPassword in config", "user_id", user.ID)
	} else {
		slog.Info("default admin created", "user_id", user.ID)
	}
	return nil
}

// Login validates credentials and issues a session token.
func (a *App) Login(username, password string) (domain.User, string, error) {
	username = strings.TrimSpace(username)
	user, ok, err := a.store.GetUserByUsername(username)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Logout invalidates a session token. Idempotent on unknown or empty tokens.
func (a *App) Logout(token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return a.sessions.DeleteSession(token)
}

// UserFromToken resolves a user from a session token. Every protected
// operation goes through this check first.
func (a *App) UserFromToken(token string) (domain.User, bool) {
	uid, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	user, found, err := a.store.GetUserByID(uid)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}

// RequireAuth returns the session user, or ErrUnauthenticated when the
// token is missing, expired or bound to no user.
func (a *App) RequireAuth(token string) (domain.User, error) {
	user, ok := a.UserFromToken(token)
	if !ok {
		return domain.User{}, ErrUnauthenticated
	}
	return user, nil
}

// CreateParty registers a new customer.
func (a *App) CreateParty(name, contact string) (domain.Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Party{}, &ValidationError{Reason: "party name is required"}
	}
	party, err := a.store.CreateParty(domain.Party{
		Name:      name,
		Contact:   strings.TrimSpace(contact),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return domain.Party{}, fmt.Errorf("save party: %w", err)
	}
	return party, nil
}

// CreateItem registers a new billable glass type.
func (a *App) CreateItem(name string, ratePerSqmt float64) (domain.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Item{}, &ValidationError{Reason: "item name is required"}
	}
	if ratePerSqmt <= 0 {
		return domain.Item{}, &ValidationError{Reason: "rate per sqmt must be positive"}
	}
	item, err := a.store.CreateItem(domain.Item{
		Name:        name,
		RatePerSqmt: ratePerSqmt,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return domain.Item{}, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// JobCardInput carries the validated form fields for one job.
type JobCardInput struct {
	PartyID    int64
	ItemID     int64
	Length     float64
	Width      float64
	Holes      int
	BigHoles   int
	AddCharges float64
}

// CreateJobCard checks the party and item references, computes the
// GST-inclusive total and persists the card. The total is a snapshot:
// later item rate changes never touch existing cards.
func (a *App) CreateJobCard(in JobCardInput) (domain.JobCard, error) {
	party, ok, err := a.store.GetParty(in.PartyID)
	if err != nil {
		return domain.JobCard{}, fmt.Errorf("fetch party: %w", err)
	}
	if !ok {
		return domain.JobCard{}, &ValidationError{Reason: fmt.Sprintf("party %d does not exist", in.PartyID)}
	}
	item, ok, err := a.store.GetItem(in.ItemID)
	if err != nil {
		return domain.JobCard{}, fmt.Errorf("fetch item: %w", err)
	}
	if !ok {
		return domain.JobCard{}, &ValidationError{Reason: fmt.Sprintf("item %d does not exist", in.ItemID)}
	}

	total, err := pricing.ComputeTotal(item.RatePerSqmt, in.Length, in.Width, in.Holes, in.BigHoles, in.AddCharges)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			return domain.JobCard{}, &ValidationError{Reason: err.Error()}
		}
		return domain.JobCard{}, fmt.Errorf("compute total: %w", err)
	}

	card, err := a.store.CreateJobCard(domain.JobCard{
		PartyID:     party.ID,
		ItemID:      item.ID,
		Length:      in.Length,
		Width:       in.Width,
		Holes:       in.Holes,
		BigHoles:    in.BigHoles,
		AddCharges:  in.AddCharges,
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return domain.JobCard{}, fmt.Errorf("save job card: %w", err)
	}
	return card, nil
}

// Overview is the data handed to the rendering collaborator for the
// index page.
type Overview struct {
	Parties  []domain.Party
	Items    []domain.Item
	JobCards []domain.JobCard
}

// Overview lists parties and items in insertion order and job cards
// newest first.
func (a *App) Overview() (Overview, error) {
	parties, err := a.store.ListParties()
	if err != nil {
		return Overview{}, fmt.Errorf("list parties: %w", err)
	}
	items, err := a.store.ListItems()
	if err != nil {
		return Overview{}, fmt.Errorf("list items: %w", err)
	}
	jobCards, err := a.store.ListJobCards()
	if err != nil {
		return Overview{}, fmt.Errorf("list job cards: %w", err)
	}
	return Overview{Parties: parties, Items: items, JobCards: jobCards}, nil
}

// JobCardsForParty lists one party's job cards, newest first.
func (a *App) JobCardsForParty(partyID int64) ([]domain.JobCard, error) {
	if _, ok, err := a.store.GetParty(partyID); err != nil {
		return nil, fmt.Errorf("fetch party: %w", err)
	} else if !ok {
		return nil, &ValidationError{Reason: fmt.Sprintf("party %d does not exist", partyID)}
	}
	return a.store.ListJobCardsByParty(partyID)
}
