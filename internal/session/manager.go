package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/cart"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/auth"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/config"
	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
	"github.com/google/uuid"
)

// GuestCartTransferer moves the guest cart into the signed-in account.
type GuestCartTransferer interface {
	TransferGuestCart(ctx context.Context) (*cart.TransferReport, error)
}

// Summary describes the current session.
type Summary struct {
	Authenticated bool       `json:"authenticated"`
	SessionID     string     `json:"sessionId,omitempty"`
	UserID        string     `json:"userId"`
	Email         string     `json:"email,omitempty"`
	Role          string     `json:"role,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// SignInResult is the session after sign-in plus the outcome of the guest
// cart transfer, when one ran.
type SignInResult struct {
	Session     Summary
	Transfer    *cart.TransferReport
	TransferErr error
}

// Manager is the storefront's identity source. It holds the access token of
// the signed-in customer for this device.
type Manager struct {
	cfg  config.JWTConfig
	logg *logger.Logger
	now  func() time.Time

	mu        sync.RWMutex
	token     string
	claims    *auth.AccessTokenClaims
	sessionID string
	transfer  GuestCartTransferer
}

func NewManager(cfg config.JWTConfig, logg *logger.Logger) *Manager {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Manager{
		cfg:  cfg,
		logg: logg,
		now:  time.Now,
	}
}

// SetTransferer registers the component run on the anonymous to
// authenticated transition. The engine depends on the manager, so it is
// attached after construction.
func (m *Manager) SetTransferer(t GuestCartTransferer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfer = t
}

func (m *Manager) IsAuthenticated(context.Context) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeLocked()
}

func (m *Manager) activeLocked() bool {
	if m.claims == nil || m.token == "" {
		return false
	}
	if m.claims.ExpiresAt != nil && m.now().After(m.claims.ExpiresAt.Add(m.cfg.Leeway)) {
		return false
	}
	return true
}

// UserID returns the signed-in customer id, or the anonymous owner.
func (m *Manager) UserID(context.Context) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.activeLocked() {
		return cart.AnonymousOwner
	}
	return m.claims.Principal()
}

// Token returns the bearer token for remote calls, or "" for guests.
func (m *Manager) Token(context.Context) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.activeLocked() {
		return ""
	}
	return m.token
}

func (m *Manager) Summary(context.Context) Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summaryLocked()
}

func (m *Manager) summaryLocked() Summary {
	if !m.activeLocked() {
		return Summary{UserID: cart.AnonymousOwner}
	}
	summary := Summary{
		Authenticated: true,
		SessionID:     m.sessionID,
		UserID:        m.claims.Principal(),
		Email:         m.claims.Email,
		Role:          m.claims.Role,
	}
	if m.claims.ExpiresAt != nil {
		exp := m.claims.ExpiresAt.UTC()
		summary.ExpiresAt = &exp
	}
	return summary
}

// SignIn adopts token as the session credential. When the device was
// anonymous before, the guest cart is transferred into the account; a failed
// transfer does not undo the sign-in.
func (m *Manager) SignIn(ctx context.Context, token string) (*SignInResult, error) {
	token = strings.TrimSpace(token)
	claims, err := auth.ParseAccessToken(m.cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}

	m.mu.Lock()
	wasAuthenticated := m.activeLocked()
	m.token = token
	m.claims = claims
	m.sessionID = uuid.NewString()
	summary := m.summaryLocked()
	transfer := m.transfer
	m.mu.Unlock()

	ctx = m.logg.WithSessionID(m.logg.WithUserID(ctx, summary.UserID), summary.SessionID)
	m.logg.Info(ctx, "customer signed in")

	result := &SignInResult{Session: summary}
	if wasAuthenticated || transfer == nil {
		return result, nil
	}

	report, err := transfer.TransferGuestCart(ctx)
	result.Transfer = report
	if err != nil {
		result.TransferErr = err
		m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "guest cart transfer did not complete")
	}
	return result, nil
}

// SignOut drops the credential; later operations run as a guest.
func (m *Manager) SignOut(ctx context.Context) Summary {
	m.mu.Lock()
	userID := ""
	if m.claims != nil {
		userID = m.claims.Principal()
	}
	m.token = ""
	m.claims = nil
	m.sessionID = ""
	summary := m.summaryLocked()
	m.mu.Unlock()

	if userID != "" {
		m.logg.Info(m.logg.WithUserID(ctx, userID), "customer signed out")
	}
	return summary
}
