// Package portfolio loads the whole portfolio from the backend and keeps the last good snapshot.
package portfolio

import (
	"context"

	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/nikogura/portfolio-admin/pkg/logging"
	"github.com/nikogura/portfolio-admin/pkg/model"
	"github.com/nikogura/portfolio-admin/pkg/query"
	"github.com/nikogura/portfolio-admin/pkg/services"
	"github.com/nikogura/portfolio-admin/pkg/transform"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Provider exposes the loaded portfolio view.
type Provider struct {
	svc    *services.Services
	logger *zap.Logger
	query  *query.Query[*model.View]
}

// NewProvider creates a Provider. Nothing is fetched until Load.
func NewProvider(svc *services.Services, logger *zap.Logger) (p *Provider) {
	p = &Provider{
		svc:    svc,
		logger: logging.OrNop(logger),
	}
	p.query = query.New(p.fetch, logger)
	return p
}

// Load fetches the portfolio the first time it is called. Later calls are no-ops.
func (p *Provider) Load(ctx context.Context) (err error) {
	err = p.query.Run(ctx)
	return err
}

// Refetch reloads every collection.
func (p *Provider) Refetch(ctx context.Context) (err error) {
	err = p.query.Refetch(ctx)
	return err
}

// Data returns a copy of the last successfully loaded view, or nil.
func (p *Provider) Data() (view *model.View) {
	view = p.query.State().Data.Clone()
	return view
}

// Loading reports whether a load is in flight or has not run yet.
func (p *Provider) Loading() (loading bool) {
	loading = p.query.State().Loading
	return loading
}

// Error returns the message of the last failed load.
func (p *Provider) Error() (msg string) {
	msg = p.query.State().Error
	return msg
}

// fetch issues all five reads together and waits for every one before building the view.
func (p *Provider) fetch(ctx context.Context) (view *model.View, err error) {
	var (
		profile     *api.Profile
		categories  []api.SkillCategory
		otherSkills []api.OtherSkill
		experiences []api.Experience
		educations  []api.Education
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		result, getErr := p.svc.Profile.Get(gctx)
		if getErr != nil {
			p.logger.Warn("profile unavailable", zap.Error(getErr))
			return err
		}
		profile = &result
		return err
	})

	g.Go(func() (err error) {
		categories, err = p.svc.SkillCategories.GetAll(gctx, false)
		if err != nil {
			err = errors.Wrap(err, "failed to load skill categories")
		}
		return err
	})

	g.Go(func() (err error) {
		otherSkills, err = p.svc.OtherSkills.GetAll(gctx)
		if err != nil {
			err = errors.Wrap(err, "failed to load other skills")
		}
		return err
	})

	g.Go(func() (err error) {
		experiences, err = p.svc.Experience.GetAll(gctx)
		if err != nil {
			err = errors.Wrap(err, "failed to load experience")
		}
		return err
	})

	g.Go(func() (err error) {
		educations, err = p.svc.Education.GetAll(gctx)
		if err != nil {
			err = errors.Wrap(err, "failed to load education")
		}
		return err
	})

	err = g.Wait()
	if err != nil {
		return view, err
	}

	view = &model.View{
		SkillCategories: transform.SkillCategoriesFromAPI(categories),
		OtherSkills:     transform.OtherSkillsFromAPI(otherSkills),
		Experience:      transform.ExperienceListFromAPI(experiences),
		Education:       transform.EducationListFromAPI(educations),
	}
	if profile != nil {
		converted := transform.ProfileFromAPI(*profile)
		view.Profile = &converted
	}

	return view, err
}
