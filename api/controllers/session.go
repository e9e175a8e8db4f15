package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/api/responses"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/api/validators"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/cart"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/session"
	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
)

type sessionManager interface {
	SignIn(ctx context.Context, token string) (*session.SignInResult, error)
	SignOut(ctx context.Context) session.Summary
	Summary(ctx context.Context) session.Summary
}

// cartRefresher reloads the cart after the identity changed.
type cartRefresher interface {
	Fetch(ctx context.Context) (*cart.Cart, error)
}

type loginRequest struct {
	Token string `json:"token" validate:"required,jwt"`
}

type transferView struct {
	Attempted   []string `json:"attempted"`
	Transferred []string `json:"transferred"`
	Failed      []string `json:"failed"`
	Error       string   `json:"error,omitempty"`
}

type loginResponse struct {
	Session  session.Summary `json:"session"`
	Transfer *transferView   `json:"transfer,omitempty"`
}

func newTransferView(report *cart.TransferReport, err error) *transferView {
	if report == nil && err == nil {
		return nil
	}
	view := &transferView{Attempted: []string{}, Transferred: []string{}, Failed: []string{}}
	if report != nil {
		view.Attempted = append(view.Attempted, report.Attempted...)
		view.Transferred = append(view.Transferred, report.Transferred...)
		view.Failed = append(view.Failed, report.Failed...)
	}
	if err != nil {
		view.Error = cart.Translate(err).Message
	}
	return view
}

func loginToken(r *http.Request) (string, error) {
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		return validators.BearerToken(header)
	}
	var body loginRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		return "", err
	}
	return body.Token, nil
}

// SessionLogin adopts the customer's access token. Signing in from a guest
// session moves the guest cart into the account.
func SessionLogin(manager sessionManager, carts cartRefresher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		token, err := loginToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := manager.SignIn(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// a completed transfer already published the account cart
		if (result.Transfer == nil || result.TransferErr != nil) && carts != nil {
			if _, err := carts.Fetch(r.Context()); err != nil && logg != nil {
				logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "cart refresh after sign-in failed")
			}
		}

		responses.WriteSuccess(w, loginResponse{
			Session:  result.Session,
			Transfer: newTransferView(result.Transfer, result.TransferErr),
		})
	}
}

// SessionLogout drops the credential and reloads the guest cart.
func SessionLogout(manager sessionManager, carts cartRefresher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		summary := manager.SignOut(r.Context())
		if carts != nil {
			if _, err := carts.Fetch(r.Context()); err != nil && logg != nil {
				logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "cart refresh after sign-out failed")
			}
		}
		responses.WriteSuccess(w, summary)
	}
}

func SessionSummary(manager sessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}
		responses.WriteSuccess(w, manager.Summary(r.Context()))
	}
}
