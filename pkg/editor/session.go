// Package editor is the admin editing surface over a loaded portfolio.
//
// A Session owns all UI state explicitly: whether admin mode is on, which section is being edited, the
// local view that optimistic patches are applied to, and the CV processing flow. Successful saves patch the
// local view in place without refetching. Failed saves put the local view back to the provider's last
// successful snapshot and raise an alert.
package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikogura/portfolio-admin/pkg/client"
	"github.com/nikogura/portfolio-admin/pkg/logging"
	"github.com/nikogura/portfolio-admin/pkg/model"
	"github.com/nikogura/portfolio-admin/pkg/portfolio"
	"github.com/nikogura/portfolio-admin/pkg/query"
	"github.com/nikogura/portfolio-admin/pkg/services"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Section names an editable part of the page.
type Section string

// Editable sections.
const (
	SectionProfile     Section = "profile"
	SectionBio         Section = "bio"
	SectionExperience  Section = "experience"
	SectionEducation   Section = "education"
	SectionSkills      Section = "skills"
	SectionSkillsAdd   Section = "skills-add"
	SectionOtherSkills Section = "other-skills"
)

// Editing is the section and entity currently open in a form. ID is model.NewID for a create.
type Editing struct {
	Section Section
	ID      string
}

// CVState is the CV upload flow state.
type CVState int

// CV flow states.
const (
	CVIdle CVState = iota
	CVProcessing
)

// Errors returned by Session operations.
var (
	ErrNotAdmin   = errors.New("admin mode is off")
	ErrBusy       = errors.New("a CV is being processed")
	ErrNotEditing = errors.New("section is not being edited")
	ErrNotPDF     = errors.New("please choose a valid PDF file")
	ErrNoProfile  = errors.New("no profile to update")
)

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

type nopAlerter struct{}

func (nopAlerter) Alert(string) {}

// patch applies one optimistic change to a private copy of the local view.
type patch func(view *model.View)

// Session is one admin editing session.
type Session struct {
	provider *portfolio.Provider
	svc      *services.Services
	alerter  Alerter
	logger   *zap.Logger
	mutation *query.Mutation

	mu      sync.Mutex
	admin   bool
	editing *Editing
	local   *model.View
	cvState CVState
}

// NewSession creates a Session in viewing mode with admin off. A nil alerter discards alerts.
func NewSession(provider *portfolio.Provider, svc *services.Services, alerter Alerter, logger *zap.Logger) (s *Session) {
	if alerter == nil {
		alerter = nopAlerter{}
	}

	s = &Session{
		provider: provider,
		svc:      svc,
		alerter:  alerter,
		logger:   logging.OrNop(logger),
		mutation: query.NewMutation(logger),
	}
	return s
}

// Load runs the initial portfolio load and seeds the local view from it.
func (s *Session) Load(ctx context.Context) (err error) {
	err = s.provider.Load(ctx)
	if err != nil {
		return err
	}

	s.Sync()
	return err
}

// Retry re-runs the top-level load, typically after the initial load failed.
func (s *Session) Retry(ctx context.Context) (err error) {
	err = s.provider.Refetch(ctx)
	if err != nil {
		return err
	}

	s.Sync()
	return err
}

// Sync replaces the local view with the provider's data, when there is any.
func (s *Session) Sync() {
	data := s.provider.Data()
	if data == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.local = data
}

// View returns what should be rendered: the local view, else the provider's data, else the placeholder.
func (s *Session) View() (view *model.View) {
	s.mu.Lock()
	local := s.local.Clone()
	s.mu.Unlock()

	if local != nil {
		view = local
		return view
	}

	view = s.provider.Data()
	if view != nil {
		return view
	}

	view = model.Fallback()
	return view
}

// SetAdmin turns admin mode on or off. Turning it off closes any open form.
func (s *Session) SetAdmin(admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = admin
	if !admin {
		s.editing = nil
	}
}

// Admin reports whether admin mode is on.
func (s *Session) Admin() (admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	admin = s.admin
	return admin
}

// Edit opens section for editing. Use model.NewID as id to create.
func (s *Session) Edit(section Section, id string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.checkLocked()
	if err != nil {
		return err
	}

	s.editing = &Editing{Section: section, ID: id}
	return err
}

// Cancel closes the open form without saving.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
}

// Editing returns the open form, if any.
func (s *Session) Editing() (editing Editing, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == nil {
		return editing, ok
	}
	editing = *s.editing
	ok = true
	return editing, ok
}

// CVState returns the CV flow state.
func (s *Session) CVState() (state CVState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state = s.cvState
	return state
}

// Saving reports whether a backend write is in flight.
func (s *Session) Saving() (saving bool) {
	saving = s.mutation.Loading()
	return saving
}

// LastError returns the message of the last failed write.
func (s *Session) LastError() (msg string) {
	msg = s.mutation.Error()
	return msg
}

func (s *Session) checkLocked() (err error) {
	if !s.admin {
		err = ErrNotAdmin
		return err
	}
	if s.cvState == CVProcessing {
		err = ErrBusy
		return err
	}
	return err
}

// guard checks that admin actions are allowed right now.
func (s *Session) guard() (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.checkLocked()
	return err
}

// begin checks that section is open for editing and returns the open form.
func (s *Session) begin(section Section) (editing Editing, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.checkLocked()
	if err != nil {
		return editing, err
	}

	if s.editing == nil || s.editing.Section != section {
		err = errors.Wrapf(ErrNotEditing, "%s", section)
		return editing, err
	}

	editing = *s.editing
	return editing, err
}

// apply runs p against a copy of the current local view and stores the result.
func (s *Session) apply(p patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.local.Clone()
	if next == nil {
		next = s.provider.Data()
	}
	if next == nil {
		next = &model.View{}
	}

	p(next)
	s.local = next
}

// succeed closes the form after a successful save.
func (s *Session) succeed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
}

// fail reverts local state to the last fetched snapshot and alerts the user.
func (s *Session) fail(action string, err error) (out error) {
	snapshot := s.provider.Data()

	s.mu.Lock()
	s.local = snapshot
	s.mu.Unlock()

	s.logger.Warn("save failed", zap.String("action", action), zap.Error(err))
	s.alerter.Alert(fmt.Sprintf("Error saving: %s", client.Message(err)))

	out = err
	return out
}

func mutate[T any](ctx context.Context, s *Session, fn func(ctx context.Context) (T, error)) (result T, err error) {
	result, err = query.Mutate(ctx, s.mutation, fn)
	return result, err
}
