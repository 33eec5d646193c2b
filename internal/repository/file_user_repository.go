package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperrors "useradmin/internal/errors"
	"useradmin/internal/model"
)

// fileUserRepository keeps the whole collection in one JSON document of the
// form {"users": [...]}. Every read loads the document and every mutation
// rewrites it wholesale.
//
// There is no lock around the read-modify-write cycle: two concurrent
// mutations race and the last writer wins silently. Use the SQL backend when
// concurrent writers matter.
type fileUserRepository struct {
	path string
}

// NewFileUserRepository builds a repository persisting to the JSON document at path.
// The parent directory is created if needed; the file itself is created on first write.
func NewFileUserRepository(path string) (UserRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &fileUserRepository{path: path}, nil
}

func (r *fileUserRepository) List(ctx context.Context) ([]model.User, error) {
	return r.loadAll()
}

func (r *fileUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.loadAll()
	if err != nil {
		return nil, err
	}
	i := indexOf(users, id)
	if i < 0 {
		return nil, apperrors.ErrUserNotFound
	}
	user := users[i]
	return &user, nil
}

func (r *fileUserRepository) Create(ctx context.Context, user *model.User) error {
	users, err := r.loadAll()
	if err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return r.saveAll(append(users, *user))
}

func (r *fileUserRepository) Update(ctx context.Context, user *model.User) error {
	users, err := r.loadAll()
	if err != nil {
		return err
	}
	i := indexOf(users, user.ID)
	if i < 0 {
		return apperrors.ErrUserNotFound
	}
	users[i].Name = user.Name
	users[i].Email = user.Email
	return r.saveAll(users)
}

func (r *fileUserRepository) Delete(ctx context.Context, id string) error {
	users, err := r.loadAll()
	if err != nil {
		return err
	}
	i := indexOf(users, id)
	if i < 0 {
		return apperrors.ErrUserNotFound
	}
	return r.saveAll(append(users[:i], users[i+1:]...))
}

func (r *fileUserRepository) loadAll() ([]model.User, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", apperrors.ErrStoreUnavailable, r.path, err)
	}

	var doc model.UserList
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", apperrors.ErrStoreUnavailable, r.path, err)
	}
	if doc.Users == nil {
		doc.Users = []model.User{}
	}
	return doc.Users, nil
}

// saveAll replaces the document through a sibling temp file and a rename.
func (r *fileUserRepository) saveAll(users []model.User) error {
	data, err := json.MarshalIndent(model.UserList{Users: users}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	// CreateTemp uses 0600; keep the document's existing mode.
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(r.path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write users: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

func indexOf(users []model.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
