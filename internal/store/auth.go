package store

import (
	"context"
	"sync"
	"time"

	"chatapp-client/internal/api"
	"chatapp-client/internal/mockdata"
	"chatapp-client/internal/models"
	"chatapp-client/internal/validate"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// MockToken is the sentinel token stored by LoginMock.
const MockToken = "mock-token"

// Auth tracks the current user, token and authentication flag, and brokers
// credential operations through the API client. A failed call surfaces as a
// user-visible error string; state stays unauthenticated.
type Auth struct {
	notifier
	api   *api.Client
	sugar *zap.SugaredLogger

	mutex         sync.RWMutex
	user          *models.User
	token         string
	authenticated bool
	loading       bool
	lastError     string
}

func NewAuth(client *api.Client, sugar *zap.SugaredLogger) *Auth {
	return &Auth{api: client, sugar: sugar}
}

// Login exchanges credentials for a session. Single attempt: any failure is
// stored as the error message and returned.
func (a *Auth) Login(ctx context.Context, email string, password string) error {
	a.begin()

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.fail(err)
		return err
	}

	a.succeed(res)
	return nil
}

// Register creates an account and logs into it. The form is gated locally
// before any request goes out.
func (a *Auth) Register(ctx context.Context, username string, email string, password string) error {
	if err := validate.Struct(validate.Registration{
		Username: username,
		Email:    email,
		Password: password,
	}); err != nil {
		a.mutex.Lock()
		a.lastError = err.Error()
		a.mutex.Unlock()
		a.notify()
		return err
	}

	a.begin()

	res, err := a.api.Register(ctx, username, email, password)
	if err != nil {
		a.fail(err)
		return err
	}

	a.succeed(res)
	return nil
}

// LoginMock seeds the store with the demo user and a sentinel token so the
// rest of the client can be exercised without a backend.
func (a *Auth) LoginMock() {
	user := mockdata.DemoUser(time.Now())

	a.mutex.Lock()
	a.user = &user
	a.token = MockToken
	a.authenticated = true
	a.loading = false
	a.lastError = ""
	a.mutex.Unlock()
	a.notify()
}

// Logout clears local session state. The token is not revoked server-side.
func (a *Auth) Logout() {
	a.api.SetToken("")

	a.mutex.Lock()
	a.user = nil
	a.token = ""
	a.authenticated = false
	a.mutex.Unlock()
	a.notify()
}

// UpdateProfile shallow-merges the given fields into the current user. No-op
// when nobody is logged in.
func (a *Auth) UpdateProfile(patch models.UserPatch) {
	a.mutex.Lock()
	if a.user == nil {
		a.mutex.Unlock()
		return
	}
	patch.Apply(a.user)
	a.mutex.Unlock()
	a.notify()
}

func (a *Auth) begin() {
	a.mutex.Lock()
	a.loading = true
	a.lastError = ""
	a.mutex.Unlock()
	a.notify()
}

func (a *Auth) fail(err error) {
	a.sugar.Debug(err)

	a.mutex.Lock()
	a.lastError = err.Error()
	a.loading = false
	a.mutex.Unlock()
	a.notify()
}

func (a *Auth) succeed(res models.AuthResponse) {
	a.api.SetToken(res.AccessToken)

	a.mutex.Lock()
	user := res.User
	a.user = &user
	a.token = res.AccessToken
	a.authenticated = true
	a.loading = false
	a.mutex.Unlock()
	a.notify()
}

func (a *Auth) User() (models.User, bool) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	if a.user == nil {
		return models.User{}, false
	}
	return *a.user, true
}

func (a *Auth) Token() string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.token
}

func (a *Auth) IsAuthenticated() bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.authenticated
}

func (a *Auth) IsLoading() bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.loading
}

func (a *Auth) LastError() string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.lastError
}

// TokenExpiresAt inspects the stored access token's claims without verifying
// the signature. Returns false for the mock token or anything unparsable.
func (a *Auth) TokenExpiresAt() (time.Time, bool) {
	token := a.Token()
	if token == "" || token == MockToken {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil || claims.ExpiresAt == nil {
		a.sugar.Debug(err)
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
