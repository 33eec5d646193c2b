package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"useradmin/internal/client"
	apperrors "useradmin/internal/errors"
	"useradmin/internal/model"
	"useradmin/internal/service"
)

// unknownFailure is shown when a failure carries no usable message.
const unknownFailure = "An unknown error occurred"

// ActionForm is the pending action context: one action kind, the user it
// applies to (none for create) and the editable fields. It lives from
// OpenForm until Close or a successful Submit.
type ActionForm struct {
	dir    *Directory
	kind   ActionKind
	target model.User

	mu       sync.Mutex
	name     string
	email    string
	emailErr bool
	open     bool
	inFlight bool
	cancel   context.CancelFunc
}

func validEmail(email string) bool {
	return service.IsEmail(email)
}

// Kind returns the form's action.
func (f *ActionForm) Kind() ActionKind {
	return f.kind
}

// Title is the dialog title, e.g. "Update User".
func (f *ActionForm) Title() string {
	return f.kind.Title() + " User"
}

// Target returns the user the action applies to; zero for create.
func (f *ActionForm) Target() model.User {
	return f.target
}

// ReadOnly reports whether the fields are shown for context only.
func (f *ActionForm) ReadOnly() bool {
	return f.kind == ActionDelete
}

// Name returns the current name field.
func (f *ActionForm) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name
}

// Email returns the current email field.
func (f *ActionForm) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// SetName changes the name field. No-op on read-only forms.
func (f *ActionForm) SetName(name string) {
	if f.ReadOnly() {
		return
	}
	f.mu.Lock()
	f.name = name
	f.mu.Unlock()
}

// SetEmail changes the email field and re-validates it. No-op on read-only forms.
func (f *ActionForm) SetEmail(email string) {
	if f.ReadOnly() {
		return
	}
	f.mu.Lock()
	f.email = email
	f.emailErr = !validEmail(email)
	f.mu.Unlock()
}

// EmailError reports whether the last email change left an invalid value.
func (f *ActionForm) EmailError() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emailErr
}

// CanSubmit reports whether the submit control is enabled.
func (f *ActionForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSubmitLocked()
}

func (f *ActionForm) canSubmitLocked() bool {
	if !f.open || f.inFlight {
		return false
	}
	if f.kind == ActionDelete {
		return true
	}
	return strings.TrimSpace(f.name) != "" && validEmail(f.email)
}

// IsOpen reports whether the form is still open.
func (f *ActionForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Submit dispatches the action. On success it queues "User <kind>d
// successfully", closes the form, clears the selection and refreshes the
// list. On failure it queues the server's message (or a fallback) and leaves
// the form open. If Close is called while the request is in flight, the
// result is discarded and ErrFormClosed is returned.
func (f *ActionForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch {
	case !f.open:
		f.mu.Unlock()
		return ErrFormClosed
	case f.inFlight:
		f.mu.Unlock()
		return ErrSubmitInFlight
	case !f.canSubmitLocked():
		f.mu.Unlock()
		return ErrFormInvalid
	}
	reqCtx, cancel := context.WithCancel(ctx)
	f.inFlight = true
	f.cancel = cancel
	u := model.User{ID: f.target.ID, Name: f.name, Email: f.email}
	f.mu.Unlock()

	err := dispatch(reqCtx, f.dir.api, f.kind, u)
	cancel()

	f.mu.Lock()
	f.inFlight = false
	f.cancel = nil
	if !f.open {
		f.mu.Unlock()
		return ErrFormClosed
	}
	if err != nil {
		f.mu.Unlock()
		f.dir.notifier.Push(failureMessage(err))
		return err
	}
	f.open = false
	f.mu.Unlock()

	f.dir.notifier.Push(fmt.Sprintf("User %sd successfully", f.kind))
	f.dir.Deselect()
	// a failed refresh is already reported through the notifier
	_ = f.dir.Refresh(ctx)
	return nil
}

// Close dismisses the form, cancelling any in-flight request.
func (f *ActionForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	if f.cancel != nil {
		f.cancel()
	}
}

func failureMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, apperrors.ErrInvalidEmail), errors.Is(err, ErrDeleteRejected):
		return err.Error()
	default:
		return unknownFailure
	}
}
