package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"useradmin/internal/app"
	"useradmin/internal/client"
	"useradmin/internal/config"
)

// session is one CLI invocation's client state.
type session struct {
	api      *client.Client
	notifier *app.Notifier
	dir      *app.Directory
	out      io.Writer
}

// newSession builds the client from flags and environment and loads the user list.
func newSession(ctx context.Context, out io.Writer) (*session, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	baseURL := cfg.APIBaseURL
	if flagAPI != "" {
		baseURL = flagAPI
	}
	token := cfg.Token
	if flagToken != "" {
		token = flagToken
	}

	var opts []client.Option
	if token != "" {
		opts = append(opts, client.WithToken(token))
	}
	s := &session{
		api:      client.New(baseURL, opts...),
		notifier: app.NewNotifier(0),
		out:      out,
	}
	s.dir = app.NewDirectory(s.api, s.notifier)

	if err := s.dir.Refresh(ctx); err != nil {
		s.flush()
		errorHandled = true
		return nil, err
	}
	return s, nil
}

// flush prints and dismisses pending notifications.
func (s *session) flush() {
	for _, note := range s.notifier.Drain() {
		fmt.Fprintln(s.out, note.Message)
	}
}

// selectUser makes id the selection or reports it as unknown.
func (s *session) selectUser(id string) error {
	if !s.dir.Select(id) {
		return fmt.Errorf("user %q not found", id)
	}
	return nil
}

// submit runs form and prints its outcome.
func (s *session) submit(ctx context.Context, form *app.ActionForm) error {
	if !form.CanSubmit() {
		return fmt.Errorf("%s: %s", strings.ToLower(form.Title()), formProblems(form))
	}
	err := form.Submit(ctx)
	s.flush()
	if err != nil {
		errorHandled = true
	}
	return err
}

func formProblems(form *app.ActionForm) string {
	var problems []string
	if strings.TrimSpace(form.Name()) == "" {
		problems = append(problems, "name is required")
	}
	if form.EmailError() || form.Email() == "" {
		problems = append(problems, "Invalid email format")
	}
	return strings.Join(problems, ", ")
}
