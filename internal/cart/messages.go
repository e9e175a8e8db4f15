package cart

import (
	"errors"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/notifications"
	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
)

var (
	ErrOperationInFlight  = pkgerrors.New(pkgerrors.CodeConflict, "an operation on this line is already in progress")
	ErrLineNotFound       = pkgerrors.New(pkgerrors.CodeNotFound, "line not found")
	ErrInvalidQuantity    = pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	ErrInsufficientStock  = pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock")
	ErrProductUnavailable = pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	ErrProductNotFound    = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
)

const (
	titleCart       = "Cart"
	titleSession    = "Sign in required"
	titleConnection = "Connection problem"

	MessageUnauthorized = "You are not authorized to perform this action."
	MessageTransport    = "Could not reach the server. Please try again."
	messageForbidden    = "You do not have permission to do that."
	messageNotFound     = "The requested item could not be found."
	messageValidation   = "The request was not valid. Please review it and try again."
	messageConflict     = "Your cart changed in the meantime. Please refresh and try again."
	messageGeneric      = "Something went wrong while updating your cart."
	messageTransferred  = "Some items from your guest cart could not be added to your account."
)

var domainMessages = []struct {
	err     error
	message string
}{
	{ErrLineNotFound, "This product is not in your cart."},
	{ErrInvalidQuantity, "Quantity must be at least 1."},
	{ErrInsufficientStock, "There is not enough stock for that quantity."},
	{ErrProductUnavailable, "This product is not available."},
	{ErrProductNotFound, "This product no longer exists."},
}

// Translate turns an engine failure into the notice shown to the customer.
func Translate(err error) notifications.Notice {
	notice := notifications.Notice{
		Title:    titleCart,
		Message:  messageGeneric,
		Severity: notifications.SeverityError,
	}
	if err == nil {
		return notice
	}

	for _, known := range domainMessages {
		if errors.Is(err, known.err) {
			notice.Message = known.message
			return notice
		}
	}

	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeUnauthorized:
		notice.Title = titleSession
		notice.Message = MessageUnauthorized
	case pkgerrors.CodeTransport:
		notice.Title = titleConnection
		notice.Message = MessageTransport
	case pkgerrors.CodeForbidden:
		notice.Message = messageForbidden
	case pkgerrors.CodeNotFound:
		notice.Message = messageNotFound
	case pkgerrors.CodeValidation:
		notice.Message = messageValidation
	case pkgerrors.CodeConflict:
		notice.Message = messageConflict
	}
	return notice
}
