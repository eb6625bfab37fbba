// Package snapshot saves a rendered portfolio view to disk and reads it back for offline rendering.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/nikogura/portfolio-admin/pkg/model"
	"github.com/pkg/errors"
)

// File is the on-disk snapshot.
type File struct {
	SavedAt time.Time   `json:"saved_at"`
	Source  string      `json:"source"`
	View    *model.View `json:"view"`
}

// Save writes view to path as indented JSON. source records where the view came from.
func Save(path, source string, view *model.View) (err error) {
	file := File{
		SavedAt: time.Now().UTC(),
		Source:  source,
		View:    view,
	}

	err = file.Validate()
	if err != nil {
		err = errors.Wrap(err, "refusing to save invalid snapshot")
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(file, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal snapshot")
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create snapshot directory: %s", filepath.Dir(path))
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write snapshot: %s", path)
		return err
	}

	return err
}

// Load reads a snapshot from a JSON file.
func Load(path string) (file File, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read snapshot: %s", path)
		return file, err
	}

	err = json.Unmarshal(data, &file)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse snapshot JSON: %s", path)
		return file, err
	}

	err = file.Validate()
	if err != nil {
		err = errors.Wrap(err, "snapshot validation failed")
		return file, err
	}

	return file, err
}

// Validate checks that every entry carries the fields the page needs to render it.
func (f *File) Validate() (err error) {
	if f.View == nil {
		err = errors.New("snapshot has no view")
		return err
	}

	for i, exp := range f.View.Experience {
		if exp.Company == "" {
			err = errors.Errorf("experience at index %d missing company", i)
			return err
		}
	}

	for i, edu := range f.View.Education {
		if edu.School == "" {
			err = errors.Errorf("education at index %d missing school", i)
			return err
		}
	}

	for i, group := range f.View.SkillCategories {
		if group.Name == "" {
			err = errors.Errorf("skill category at index %d missing name", i)
			return err
		}
	}

	for i, skill := range f.View.OtherSkills {
		if skill.Name == "" {
			err = errors.Errorf("other skill at index %d missing name", i)
			return err
		}
	}

	return err
}
