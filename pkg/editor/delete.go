package editor

import (
	"context"

	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/nikogura/portfolio-admin/pkg/model"
)

// DeleteExperience removes an experience entry once the backend confirms.
func (s *Session) DeleteExperience(ctx context.Context, id string) (err error) {
	err = s.remove(ctx, "delete experience", func(ctx context.Context) (api.MessageResponse, error) {
		return s.svc.Experience.Delete(ctx, id)
	}, func(view *model.View) {
		kept := make([]model.Experience, 0, len(view.Experience))
		for _, e := range view.Experience {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		view.Experience = kept
	})
	return err
}

// DeleteEducation removes an education entry once the backend confirms.
func (s *Session) DeleteEducation(ctx context.Context, id string) (err error) {
	err = s.remove(ctx, "delete education", func(ctx context.Context) (api.MessageResponse, error) {
		return s.svc.Education.Delete(ctx, id)
	}, func(view *model.View) {
		kept := make([]model.Education, 0, len(view.Education))
		for _, e := range view.Education {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		view.Education = kept
	})
	return err
}

// DeleteOtherSkill removes an other skill once the backend confirms.
func (s *Session) DeleteOtherSkill(ctx context.Context, id string) (err error) {
	err = s.remove(ctx, "delete other skill", func(ctx context.Context) (api.MessageResponse, error) {
		return s.svc.OtherSkills.Delete(ctx, id)
	}, func(view *model.View) {
		kept := make([]model.OtherSkill, 0, len(view.OtherSkills))
		for _, o := range view.OtherSkills {
			if o.ID != id {
				kept = append(kept, o)
			}
		}
		view.OtherSkills = kept
	})
	return err
}

// DeleteSkillCategory removes a skill category once the backend confirms.
func (s *Session) DeleteSkillCategory(ctx context.Context, id string) (err error) {
	err = s.remove(ctx, "delete skill category", func(ctx context.Context) (api.MessageResponse, error) {
		return s.svc.SkillCategories.Delete(ctx, id)
	}, func(view *model.View) {
		kept := make([]model.SkillGroup, 0, len(view.SkillCategories))
		for _, g := range view.SkillCategories {
			if g.ID != id {
				kept = append(kept, g)
			}
		}
		view.SkillCategories = kept
	})
	return err
}

func (s *Session) remove(ctx context.Context, action string, call func(ctx context.Context) (api.MessageResponse, error), p patch) (err error) {
	err = s.guard()
	if err != nil {
		return err
	}

	_, err = mutate(ctx, s, call)
	if err != nil {
		err = s.fail(action, err)
		return err
	}

	s.apply(p)
	return err
}
