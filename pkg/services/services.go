// Package services binds each backend resource to a set of named calls.
// There is no logic here beyond query construction and delegation to the API client.
package services

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/nikogura/portfolio-admin/pkg/client"
	"github.com/nikogura/portfolio-admin/pkg/storage"
)

// OwnerParam is the query parameter carrying the preferred owner id.
const OwnerParam = "owner_id"

// Params are optional query parameters. Nil and empty-string values are omitted.
type Params map[string]interface{}

// Services groups every resource service.
type Services struct {
	Profile         *ProfileService
	SkillCategories *SkillCategoryService
	Skills          *SkillService
	OtherSkills     *OtherSkillService
	Experience      *ExperienceService
	Education       *EducationService
	CV              *CVService
	Auth            *AuthService
}

// New builds all services over one requester. The store supplies the preferred owner id.
func New(requester client.Requester, store storage.Store) (s *Services) {
	if store == nil {
		store = storage.NewMemory(nil)
	}
	b := base{requester: requester, store: store}
	s = &Services{
		Profile:         &ProfileService{b},
		SkillCategories: &SkillCategoryService{b},
		Skills:          &SkillService{b},
		OtherSkills:     &OtherSkillService{b},
		Experience:      &ExperienceService{b},
		Education:       &EducationService{b},
		CV:              &CVService{b},
		Auth:            &AuthService{b},
	}
	return s
}

type base struct {
	requester client.Requester
	store     storage.Store
}

// listParams adds the preferred owner id from the store, when one is set.
func (b base) listParams(params Params) (out Params) {
	out = Params{}
	for k, v := range params {
		out[k] = v
	}
	if owner := b.store.Get(storage.KeyPreferredOwnerID); owner != "" {
		out[OwnerParam] = owner
	}
	return out
}

// BuildQuery serialises params, dropping nil and empty values. Keys are encoded in sorted order.
func BuildQuery(params Params) (query url.Values) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := params[k]
		if v == nil {
			continue
		}

		var s string
		switch val := v.(type) {
		case string:
			s = val
		case *string:
			if val == nil {
				continue
			}
			s = *val
		default:
			s = fmt.Sprint(val)
		}

		if s == "" {
			continue
		}

		if query == nil {
			query = url.Values{}
		}
		query.Set(k, s)
	}

	return query
}

func itemPath(collection, id string) (path string) {
	path = collection + "/" + url.PathEscape(id)
	return path
}
