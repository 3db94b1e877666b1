package errors

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a failure that knows how it should be reported to the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf reports the kind of err. Errors that are not *Error are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Status(kind Kind) int {
	switch kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	body := fiber.Map{"message": message}
	if data != "" {
		body["error"] = data
	}
	return context.Status(status).JSON(body)
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusForbidden, "access denied, admins only", data)
}

func RaiseUnauthenticatedError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusUnauthorized, "authentication required", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusNotFound, "resource not found", data)
}

// Respond writes err as a JSON error payload. Internal failures never leak their cause.
func Respond(context *fiber.Ctx, err error) error {
	var appErr *Error
	if !stderrors.As(err, &appErr) || appErr.Kind == KindInternal {
		return RaiseInternalServerError(context, "")
	}
	data := ""
	if appErr.Err != nil {
		data = appErr.Err.Error()
	}
	return RaiseError(context, Status(appErr.Kind), appErr.Message, data)
}

// Handler is the application-wide fiber error handler: unmatched routes, body limits and
// recovered panics all end up here.
func Handler(context *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if stderrors.As(err, &fiberErr) {
		if fiberErr.Code >= fiber.StatusInternalServerError {
			return RaiseInternalServerError(context, "")
		}
		return RaiseError(context, fiberErr.Code, fiberErr.Message, "")
	}
	return Respond(context, err)
}
