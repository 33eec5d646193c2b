package app

import (
	"context"
	"errors"
	"strings"

	"useradmin/internal/model"
)

// ActionKind is a user mutation offered by the client.
type ActionKind string

const (
	ActionCreate ActionKind = "create"
	ActionUpdate ActionKind = "update"
	ActionDelete ActionKind = "delete"
)

// Actions lists every kind in display order.
var Actions = []ActionKind{ActionCreate, ActionUpdate, ActionDelete}

var (
	// ErrNoSelection is returned when update or delete is opened without a selected user.
	ErrNoSelection = errors.New("no user selected")
	// ErrUnknownAction is returned for an ActionKind outside Actions.
	ErrUnknownAction = errors.New("unknown action")
	// ErrFormClosed is returned when submitting a form that was closed.
	ErrFormClosed = errors.New("form is closed")
	// ErrFormInvalid is returned when submitting while the submit control is disabled.
	ErrFormInvalid = errors.New("form has invalid fields")
	// ErrSubmitInFlight is returned when a submit is already running on the form.
	ErrSubmitInFlight = errors.New("submit already in progress")
	// ErrDeleteRejected is returned when the server answers a delete with success=false.
	ErrDeleteRejected = errors.New("delete was not confirmed by the server")
)

// Valid reports whether k is a known action.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Title is the capitalised action name, e.g. "Create".
func (k ActionKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// needsSelection reports whether the action applies to an existing user.
func (k ActionKind) needsSelection() bool {
	return k == ActionUpdate || k == ActionDelete
}

// DirectoryAPI is the subset of the directory client the app drives.
type DirectoryAPI interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, u model.User) (*model.User, error)
	UpdateUser(ctx context.Context, u model.User) (*model.User, error)
	DeleteUser(ctx context.Context, u model.User) (bool, error)
}

// dispatch runs the API call matching kind.
func dispatch(ctx context.Context, api DirectoryAPI, kind ActionKind, u model.User) error {
	switch kind {
	case ActionCreate:
		_, err := api.CreateUser(ctx, u)
		return err
	case ActionUpdate:
		_, err := api.UpdateUser(ctx, u)
		return err
	case ActionDelete:
		ok, err := api.DeleteUser(ctx, u)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDeleteRejected
		}
		return nil
	}
	return ErrUnknownAction
}
