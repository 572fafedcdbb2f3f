package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/chrisdutt24/lifeadmin/internal/auth"
	"github.com/chrisdutt24/lifeadmin/internal/client/models"
	"github.com/chrisdutt24/lifeadmin/internal/client/storage"
	"github.com/chrisdutt24/lifeadmin/internal/common"
	"github.com/chrisdutt24/lifeadmin/internal/cryptox"
	"github.com/chrisdutt24/lifeadmin/internal/logging"
)

// AuthService manages local accounts and the persisted session.
//
// Contract:
//   - Register creates an account without signing in. ErrValidation on a
//     blank email or password, ErrDuplicateName when the email is taken.
//   - Login checks credentials and stores a session token.
//   - Me returns the signed-in user or ErrUnauthorized.
//   - ChangePassword, ChangeEmail and DeleteAccount require a session;
//     the first two also require the current password.
type AuthService interface {
	Me(ctx context.Context) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	ChangeEmail(ctx context.Context, currentPassword, newEmail string) (models.User, error)
	DeleteAccount(ctx context.Context) error
}

type authService struct {
	store  *storage.JSONStore
	signer *auth.Signer
	log    logging.Logger
}

func NewAuthService(store *storage.JSONStore, signer *auth.Signer, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{store: store, signer: signer, log: log}
}

func (a *authService) loadUsers(ctx context.Context) ([]models.UserRecord, error) {
	users, _, err := storage.LoadList[models.UserRecord](ctx, a.store, storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

func (a *authService) saveUsers(ctx context.Context, users []models.UserRecord) error {
	if err := a.store.Save(ctx, storage.KeyUsers, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func findByEmail(users []models.UserRecord, email string) int {
	return slices.IndexFunc(users, func(u models.UserRecord) bool { return strings.EqualFold(u.Email, email) })
}

func findByID(users []models.UserRecord, id string) int {
	return slices.IndexFunc(users, func(u models.UserRecord) bool { return u.ID == id })
}

// checkPassword verifies password against r. Records still carrying a
// plaintext password are compared directly.
func checkPassword(r models.UserRecord, password string) bool {
	if len(r.Verifier) > 0 {
		return cryptox.VerifyPassword(password, r.Salt, r.Verifier)
	}
	if r.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(r.Password), []byte(password)) == 1
}

func setPassword(r *models.UserRecord, password string) {
	r.Salt, r.Verifier = cryptox.HashPassword(password)
	r.Password = ""
}

// current returns the users and the index of the signed-in one.
func (a *authService) current(ctx context.Context) ([]models.UserRecord, int, error) {
	var session models.Session
	found, err := a.store.Load(ctx, storage.KeySession, &session)
	if err != nil {
		return nil, -1, fmt.Errorf("load session: %w", err)
	}
	if !found || session.Token == "" {
		return nil, -1, fmt.Errorf("no session: %w", common.ErrUnauthorized)
	}

	userID, err := a.signer.UserIDFromToken(session.Token)
	if err != nil {
		return nil, -1, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}

	users, err := a.loadUsers(ctx)
	if err != nil {
		return nil, -1, err
	}
	idx := findByID(users, userID)
	if idx < 0 {
		return nil, -1, fmt.Errorf("account not found: %w", common.ErrUnauthorized)
	}
	return users, idx, nil
}

func (a *authService) startSession(ctx context.Context, u models.User) error {
	token, err := a.signer.GenerateToken(u.ID)
	if err != nil {
		return err
	}
	if err := a.store.Save(ctx, storage.KeySession, models.Session{Token: token, User: u}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *authService) Me(ctx context.Context) (models.User, error) {
	users, idx, err := a.current(ctx)
	if err != nil {
		return models.User{}, err
	}
	return users[idx].Public(), nil
}

func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}

	users, err := a.loadUsers(ctx)
	if err != nil {
		return models.User{}, err
	}
	idx := findByEmail(users, email)
	if idx < 0 {
		return models.User{}, fmt.Errorf("account not found: %w", common.ErrUnauthorized)
	}
	if !checkPassword(users[idx], password) {
		return models.User{}, fmt.Errorf("wrong password: %w", common.ErrUnauthorized)
	}

	if len(users[idx].Verifier) == 0 {
		setPassword(&users[idx], password)
		if err := a.saveUsers(ctx, users); err != nil {
			a.log.Warn(ctx, "credential upgrade failed", "user_id", users[idx].ID, "error", err)
		} else {
			a.log.Info(ctx, "legacy credentials upgraded", "user_id", users[idx].ID)
		}
	}

	u := users[idx].Public()
	if err := a.startSession(ctx, u); err != nil {
		return models.User{}, err
	}
	a.log.Info(ctx, "user logged in", "user_id", u.ID)
	return u, nil
}

func (a *authService) Register(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}

	users, err := a.loadUsers(ctx)
	if err != nil {
		return models.User{}, err
	}
	if findByEmail(users, email) >= 0 {
		return models.User{}, fmt.Errorf("account %s: %w", email, common.ErrDuplicateName)
	}

	r := models.UserRecord{ID: uuid.NewString(), Email: email}
	setPassword(&r, password)

	if err := a.saveUsers(ctx, append(users, r)); err != nil {
		return models.User{}, err
	}
	a.log.Info(ctx, "user registered", "user_id", r.ID)
	return r.Public(), nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Remove(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *authService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	users, idx, err := a.current(ctx)
	if err != nil {
		return err
	}
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("please fill in all password fields: %w", common.ErrValidation)
	}
	if !checkPassword(users[idx], currentPassword) {
		return fmt.Errorf("current password is incorrect: %w", common.ErrUnauthorized)
	}

	setPassword(&users[idx], newPassword)
	if err := a.saveUsers(ctx, users); err != nil {
		return err
	}
	a.log.Info(ctx, "password changed", "user_id", users[idx].ID)
	return nil
}

func (a *authService) ChangeEmail(ctx context.Context, currentPassword, newEmail string) (models.User, error) {
	users, idx, err := a.current(ctx)
	if err != nil {
		return models.User{}, err
	}
	newEmail = strings.TrimSpace(newEmail)
	if currentPassword == "" || newEmail == "" {
		return models.User{}, fmt.Errorf("please fill in all email fields: %w", common.ErrValidation)
	}
	if !checkPassword(users[idx], currentPassword) {
		return models.User{}, fmt.Errorf("current password is incorrect: %w", common.ErrUnauthorized)
	}
	if other := findByEmail(users, newEmail); other >= 0 && other != idx {
		return models.User{}, fmt.Errorf("email %s is already in use: %w", newEmail, common.ErrDuplicateName)
	}

	users[idx].Email = newEmail
	if err := a.saveUsers(ctx, users); err != nil {
		return models.User{}, err
	}

	u := users[idx].Public()
	if err := a.startSession(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (a *authService) DeleteAccount(ctx context.Context) error {
	users, idx, err := a.current(ctx)
	if err != nil {
		return err
	}
	userID := users[idx].ID

	if err := a.saveUsers(ctx, slices.Delete(users, idx, idx+1)); err != nil {
		return err
	}

	keys := append(storage.UserCollectionKeys(userID), storage.KeySession)
	if err := a.store.Remove(ctx, keys...); err != nil {
		return fmt.Errorf("remove account data: %w", err)
	}
	a.log.Info(ctx, "account deleted", "user_id", userID)
	return nil
}
