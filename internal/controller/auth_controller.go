package controller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/internal/repository"
	"github.com/smarteval/smarteval-go/internal/session"
	"github.com/smarteval/smarteval-go/pkg/token"
)

// AuthPhase is the authentication lifecycle. The app oscillates between
// LoggedOut and LoggedIn for its whole lifetime; there is no terminal
// phase.
type AuthPhase string

const (
	PhaseLoggedOut      AuthPhase = "LOGGED_OUT"
	PhaseAuthenticating AuthPhase = "AUTHENTICATING"
	PhaseLoggedIn       AuthPhase = "LOGGED_IN"
	PhaseAwaitingOtp    AuthPhase = "AWAITING_OTP"
)

// AuthState is the authentication screen's single state record.
// IsAuthenticated is derived: true iff both token and user are present.
type AuthState struct {
	Phase           AuthPhase
	IsAuthenticated bool
	User            *models.User
	Token           string
	TokenExpiry     time.Time
	PendingEmail    string
	IsLoading       bool
	Error           string
}

// AuthController drives login, registration, OTP verification and logout,
// writing through to the session store and re-deriving its state from the
// store's stream so a logout anywhere is reflected everywhere.
type AuthController struct {
	repo   *repository.AuthRepository
	store  *session.Store
	logger *zap.Logger

	mu    sync.Mutex
	state AuthState

	*notifier
	stopWatch func()
}

// NewAuthController derives the initial state from whatever the session
// store currently holds and starts following its stream.
func NewAuthController(repo *repository.AuthRepository, store *session.Store, logger *zap.Logger) *AuthController {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &AuthController{
		repo:     repo,
		store:    store,
		logger:   logger,
		state:    stateFromSession(store.Current()),
		notifier: newNotifier(),
	}

	updates, cancel := store.Subscribe()
	c.stopWatch = cancel
	go c.watch(updates)

	return c
}

func stateFromSession(s session.Session) AuthState {
	state := AuthState{Phase: PhaseLoggedOut}
	if s.Authenticated() {
		state.Phase = PhaseLoggedIn
		state.IsAuthenticated = true
		state.User = s.User
		state.Token = s.Token
		if exp, ok := token.Expiry(s.Token); ok {
			state.TokenExpiry = exp
		}
	}
	return state
}

// watch re-derives the identity fields on every session change, covering
// external invalidation such as another screen logging out.
func (c *AuthController) watch(updates <-chan session.Session) {
	for s := range updates {
		c.mu.Lock()
		if s.Authenticated() {
			c.state.Phase = PhaseLoggedIn
			c.state.IsAuthenticated = true
			c.state.User = s.User
			c.state.Token = s.Token
			c.state.TokenExpiry = time.Time{}
			if exp, ok := token.Expiry(s.Token); ok {
				c.state.TokenExpiry = exp
			}
		} else {
			c.state.IsAuthenticated = false
			c.state.User = nil
			c.state.Token = ""
			c.state.TokenExpiry = time.Time{}
			if c.state.Phase == PhaseLoggedIn {
				c.state.Phase = PhaseLoggedOut
			}
		}
		c.mu.Unlock()
		c.notify()
	}
}

// State returns a snapshot of the current state.
func (c *AuthController) State() AuthState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops following the session stream.
func (c *AuthController) Close() {
	if c.stopWatch != nil {
		c.stopWatch()
	}
}

// Login authenticates and persists the session. A persistence failure
// after a successful login keeps the in-process session but surfaces the
// storage error instead of swallowing it.
func (c *AuthController) Login(ctx context.Context, email, password string) {
	c.begin(PhaseAuthenticating)

	for res := range c.repo.Login(ctx, models.LoginRequest{Email: email, Password: password}) {
		switch {
		case res.IsLoading():
			// Already reflected by begin.
		case res.IsSuccess():
			resp := res.Value()
			saveErr := c.store.Save(ctx, resp.Token, resp.User)

			c.mu.Lock()
			c.state.Phase = PhaseLoggedIn
			c.state.IsAuthenticated = true
			c.state.User = &resp.User
			c.state.Token = resp.Token
			c.state.TokenExpiry = time.Time{}
			if exp, ok := token.Expiry(resp.Token); ok {
				c.state.TokenExpiry = exp
			}
			c.state.IsLoading = false
			c.state.Error = ""
			if saveErr != nil {
				c.state.Error = "Logged in, but the session could not be saved"
			}
			c.mu.Unlock()
			c.notify()
		case res.IsError():
			c.mu.Lock()
			c.state.Phase = PhaseLoggedOut
			c.state.IsLoading = false
			c.state.Error = res.Message()
			c.mu.Unlock()
			c.notify()
		}
	}
}

// Register creates an account; success moves to the OTP phase.
func (c *AuthController) Register(ctx context.Context, username, email, password, role, professorEmail string) {
	c.begin(c.phase())

	req := models.RegisterRequest{
		Username:       username,
		Email:          email,
		Password:       password,
		Role:           role,
		ProfessorEmail: professorEmail,
	}
	for res := range c.repo.Register(ctx, req) {
		switch {
		case res.IsSuccess():
			c.mu.Lock()
			c.state.Phase = PhaseAwaitingOtp
			c.state.PendingEmail = email
			c.state.IsLoading = false
			c.state.Error = ""
			c.mu.Unlock()
			c.notify()
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// VerifyOtp completes registration; success returns to the logged-out
// phase so the caller can navigate to login.
func (c *AuthController) VerifyOtp(ctx context.Context, email, otp string) {
	c.begin(c.phase())

	for res := range c.repo.VerifyOtp(ctx, models.OtpVerificationRequest{Email: email, Otp: otp}) {
		switch {
		case res.IsSuccess():
			c.mu.Lock()
			c.state.Phase = PhaseLoggedOut
			c.state.PendingEmail = ""
			c.state.IsLoading = false
			c.state.Error = ""
			c.mu.Unlock()
			c.notify()
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// ResendOtp requests a fresh verification code.
func (c *AuthController) ResendOtp(ctx context.Context, email string) {
	c.begin(c.phase())

	for res := range c.repo.ResendOtp(ctx, email) {
		switch {
		case res.IsSuccess():
			c.mu.Lock()
			c.state.IsLoading = false
			c.state.Error = ""
			c.mu.Unlock()
			c.notify()
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Logout clears the session. The store broadcast flips every follower to
// logged out without an app restart.
func (c *AuthController) Logout(ctx context.Context) {
	err := c.store.Clear(ctx)

	c.mu.Lock()
	c.state = AuthState{Phase: PhaseLoggedOut}
	if err != nil {
		c.state.Error = "Could not clear the saved session"
	}
	c.mu.Unlock()
	c.notify()
}

// ForceLogout is bound to the transport 401 hook: any authenticated call
// rejected by the server ends the session.
func (c *AuthController) ForceLogout(ctx context.Context) {
	c.logger.Info("session rejected by server, logging out")
	c.Logout(ctx)

	c.mu.Lock()
	c.state.Error = "Session expired, please log in again"
	c.mu.Unlock()
	c.notify()
}

// ClearError resets the error field.
func (c *AuthController) ClearError() {
	c.mu.Lock()
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

func (c *AuthController) phase() AuthPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase
}

func (c *AuthController) begin(phase AuthPhase) {
	c.mu.Lock()
	c.state.Phase = phase
	c.state.IsLoading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

func (c *AuthController) fail(message string) {
	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Error = message
	c.mu.Unlock()
	c.notify()
}
