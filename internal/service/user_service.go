// internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"exptr-api/internal/domain"
	"exptr-api/internal/repository"
	"exptr-api/internal/util"
	"exptr-api/pkg/db"
	"exptr-api/pkg/hasher"
	"exptr-api/pkg/token"
)

// SessionCache is the subset of the redis session cache the service needs.
// A nil cache disables caching without touching the call sites.
type SessionCache interface {
	Get(ctx context.Context, sessionToken string) (*domain.UserSession, bool, error)
	Set(ctx context.Context, session *domain.UserSession) error
	Delete(ctx context.Context, sessionToken string) error
}

// UserService defines user account and session business logic.
type UserService interface {
	Signup(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, userID int64) error
	UpdateUser(ctx context.Context, id int64, email, password string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Authenticate resolves a bearer token to its live session. A token with
	// a broken signature, no session row or an outdated session is rejected.
	Authenticate(ctx context.Context, sessionToken string) (*domain.UserSession, error)
	GetSession(ctx context.Context, userID int64) (*domain.UserSession, error)
	GetSessionByToken(ctx context.Context, sessionToken string) (*domain.UserSession, error)
	// DeleteOutdatedSessions purges sessions older than the freshness window.
	// Meant for the periodic sweep, not for request handling.
	DeleteOutdatedSessions(ctx context.Context) (int64, error)
}

// userService implements the UserService interface.
type userService struct {
	dbBeginner db.DBTxBeginner       // For starting transactions (e.g. *sqlx.DB)
	dbExecutor repository.DBExecutor // For single-statement operations
	userRepo   repository.UserRepository
	tokens     *token.Manager
	cache      SessionCache // may be nil
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	tokens *token.Manager,
	cache SessionCache,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) UserService {
	return &userService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		tokens:     tokens,
		cache:      cache,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// Signup registers a new account. Email uniqueness is double-checked here
// and still enforced by the unique index, so concurrent signups lose with
// util.ErrDuplicateEntry instead of creating two rows.
func (s *userService) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	passwordHash, err := hasher.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("signup: failed to hash password: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("signup: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("signup: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByEmail(ctx, txExecutor, email)
	if err == nil {
		return nil, fmt.Errorf("signup: user with email '%s': %w", email, util.ErrDuplicateEntry)
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("signup: failed to check existing user: %w", err)
	}

	user := domain.NewUser(email, passwordHash)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, fmt.Errorf("signup: failed to create user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("signup: failed to commit transaction: %w", err)
	}

	return user, nil
}

// Login verifies credentials, issues a fresh token and installs it as the
// user's single session. A repeated login refreshes the existing session row.
func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return "", nil, fmt.Errorf("login: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return "", nil, fmt.Errorf("login: transaction controller does not implement DBExecutor")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, txExecutor, email)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: failed to get user by email: %w", err)
	}

	if !hasher.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, util.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	signedToken, err := s.tokens.Issue(user.ID, now)
	if err != nil {
		return "", nil, fmt.Errorf("login: failed to issue token: %w", err)
	}

	// Remember the token being replaced so its cache entry can be evicted.
	var staleToken string
	if prev, err := s.userRepo.GetSessionByUserID(ctx, txExecutor, user.ID); err == nil {
		staleToken = prev.Token
	} else if !errors.Is(err, util.ErrNotFound) {
		return "", nil, fmt.Errorf("login: failed to check existing session: %w", err)
	}

	if err := s.userRepo.SetSession(ctx, txExecutor, user.ID, signedToken, now); err != nil {
		return "", nil, fmt.Errorf("login: failed to set session: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return "", nil, fmt.Errorf("login: failed to commit transaction: %w", err)
	}

	if s.cache != nil && staleToken != "" {
		if err := s.cache.Delete(ctx, staleToken); err != nil {
			return "", nil, fmt.Errorf("login: failed to evict replaced session: %w", err)
		}
	}

	return signedToken, user, nil
}

// Logout removes the user's session. Logging out twice is not an error.
func (s *userService) Logout(ctx context.Context, userID int64) error {
	var staleToken string
	if session, err := s.userRepo.GetSessionByUserID(ctx, s.dbExecutor, userID); err == nil {
		staleToken = session.Token
	} else if !errors.Is(err, util.ErrNotFound) {
		return fmt.Errorf("logout: failed to get session: %w", err)
	}

	if err := s.userRepo.DeleteSession(ctx, s.dbExecutor, userID); err != nil {
		return fmt.Errorf("logout: failed to delete session: %w", err)
	}

	if s.cache != nil && staleToken != "" {
		if err := s.cache.Delete(ctx, staleToken); err != nil {
			return fmt.Errorf("logout: failed to evict session from cache: %w", err)
		}
	}

	return nil
}

// UpdateUser overwrites the account's email and, when a new password is
// given, its credential hash.
func (s *userService) UpdateUser(ctx context.Context, id int64, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("update user: failed to get user %d: %w", id, err)
	}

	user.Email = email
	if password != "" {
		passwordHash, err := hasher.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("update user: failed to hash password: %w", err)
		}
		user.PasswordHash = passwordHash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpdateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, fmt.Errorf("update user: failed to update user %d: %w", id, err)
	}

	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		return nil, fmt.Errorf("get user: failed to get user by email: %w", err)
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, sessionToken string) (*domain.UserSession, error) {
	claims, err := s.tokens.Validate(sessionToken)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w: %v", util.ErrUnauthorized, err)
	}

	session, cached, err := s.lookupSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	// A valid signature is not enough: the session must still be installed
	// for the same user and inside the freshness window.
	if session.UserID != claims.UserID {
		return nil, fmt.Errorf("authenticate: token user mismatch: %w", util.ErrUnauthorized)
	}
	if session.Outdated(time.Now().UTC()) {
		return nil, fmt.Errorf("authenticate: %w", util.ErrSessionExpired)
	}

	if s.cache != nil && !cached {
		if err := s.cache.Set(ctx, session); err != nil {
			return nil, fmt.Errorf("authenticate: failed to cache session: %w", err)
		}
	}

	return session, nil
}

// lookupSession consults the cache before the database.
func (s *userService) lookupSession(ctx context.Context, sessionToken string) (*domain.UserSession, bool, error) {
	if s.cache != nil {
		session, hit, err := s.cache.Get(ctx, sessionToken)
		if err != nil {
			return nil, false, fmt.Errorf("authenticate: session cache lookup failed: %w", err)
		}
		if hit {
			return session, true, nil
		}
	}

	session, err := s.userRepo.GetSessionByToken(ctx, s.dbExecutor, sessionToken)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, false, fmt.Errorf("authenticate: no session for token: %w", util.ErrUnauthorized)
		}
		return nil, false, fmt.Errorf("authenticate: failed to get session: %w", err)
	}
	return session, false, nil
}

func (s *userService) GetSession(ctx context.Context, userID int64) (*domain.UserSession, error) {
	session, err := s.userRepo.GetSessionByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *userService) GetSessionByToken(ctx context.Context, sessionToken string) (*domain.UserSession, error) {
	session, err := s.userRepo.GetSessionByToken(ctx, s.dbExecutor, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("get session by token: %w", err)
	}
	return session, nil
}

func (s *userService) DeleteOutdatedSessions(ctx context.Context) (int64, error) {
	olderThan := time.Now().UTC().Add(-domain.SessionTTL)
	deleted, err := s.userRepo.DeleteOutdatedSessions(ctx, s.dbExecutor, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to delete outdated sessions: %w", err)
	}
	return deleted, nil
}
