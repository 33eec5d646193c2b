// Package app holds the user-management client state: the user list with its
// selection, the pending action form and the notification queue. State is
// owned by explicit values passed to whoever needs them.
package app

import (
	"context"
	"fmt"
	"sync"

	"useradmin/internal/model"
)

// PageSize is the number of rows per client-side page.
const PageSize = 5

// Directory is the client's copy of the user list and the selection over it.
// Selection is either none or one user snapshot; any refresh clears it.
type Directory struct {
	mu       sync.Mutex
	api      DirectoryAPI
	notifier *Notifier
	users    []model.User
	selected *model.User
}

// NewDirectory creates an empty directory backed by api.
func NewDirectory(api DirectoryAPI, notifier *Notifier) *Directory {
	return &Directory{api: api, notifier: notifier, users: []model.User{}}
}

// Notifier returns the queue the directory reports to.
func (d *Directory) Notifier() *Notifier {
	return d.notifier
}

// Refresh fetches the full list, replaces the local copy and clears the
// selection. On failure the old list and selection are kept and a
// notification is queued.
func (d *Directory) Refresh(ctx context.Context) error {
	users, err := d.api.ListUsers(ctx)
	if err != nil {
		d.notifier.Push(fmt.Sprintf("Error fetching users: %v", err))
		return err
	}
	if users == nil {
		users = []model.User{}
	}

	d.mu.Lock()
	d.users = users
	d.selected = nil
	d.mu.Unlock()
	return nil
}

// Users returns a copy of the current list.
func (d *Directory) Users() []model.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.User{}, d.users...)
}

// Select makes the user with id the selection. An id not in the list clears
// the selection and returns false.
func (d *Directory) Select(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.users {
		if d.users[i].ID == id {
			u := d.users[i]
			d.selected = &u
			return true
		}
	}
	d.selected = nil
	return false
}

// Deselect clears the selection.
func (d *Directory) Deselect() {
	d.mu.Lock()
	d.selected = nil
	d.mu.Unlock()
}

// Selected returns the selected user snapshot.
func (d *Directory) Selected() (model.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selected == nil {
		return model.User{}, false
	}
	return *d.selected, true
}

// PageCount is the number of PageSize pages, at least 1.
func (d *Directory) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.users) == 0 {
		return 1
	}
	return (len(d.users) + PageSize - 1) / PageSize
}

// Page returns the rows of zero-based page n; out of range pages are empty.
func (d *Directory) Page(n int) []model.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	start := n * PageSize
	if n < 0 || start >= len(d.users) {
		return []model.User{}
	}
	end := min(start+PageSize, len(d.users))
	return append([]model.User{}, d.users[start:end]...)
}

// AvailableActions lists the actions that can be opened now: create always,
// update and delete only with a selection.
func (d *Directory) AvailableActions() []ActionKind {
	_, ok := d.Selected()
	out := make([]ActionKind, 0, len(Actions))
	for _, k := range Actions {
		if !k.needsSelection() || ok {
			out = append(out, k)
		}
	}
	return out
}

// OpenForm creates the pending action context for kind, seeded from the
// selection for update and delete.
func (d *Directory) OpenForm(kind ActionKind) (*ActionForm, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}
	f := &ActionForm{dir: d, kind: kind, open: true}
	if kind.needsSelection() {
		u, ok := d.Selected()
		if !ok {
			return nil, ErrNoSelection
		}
		f.target = u
		f.name = u.Name
		f.email = u.Email
		f.emailErr = f.email != "" && !validEmail(f.email)
	}
	return f, nil
}
