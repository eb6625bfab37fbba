package model

import (
	"reflect"
	"testing"
)

func TestCloneIsDeep(t *testing.T) {
	orig := Fallback()
	orig.SkillCategories[0].ID = "c1"
	orig.Experience[0].ID = "e1"

	clone := orig.Clone()
	if !reflect.DeepEqual(orig, clone) {
		t.Fatal("Expected clone to equal original")
	}

	clone.Profile.Bio = "changed"
	clone.SkillCategories[0].Skills[0] = "changed"
	clone.Experience[0].Duties[0] = "changed"
	clone.OtherSkills[0].Name = "changed"
	clone.Education[0].School = "changed"

	if orig.Profile.Bio == "changed" {
		t.Error("Profile shared between clone and original")
	}
	if orig.SkillCategories[0].Skills[0] == "changed" {
		t.Error("Skills shared between clone and original")
	}
	if orig.Experience[0].Duties[0] == "changed" {
		t.Error("Duties shared between clone and original")
	}
	if orig.OtherSkills[0].Name == "changed" {
		t.Error("Other skills shared between clone and original")
	}
	if orig.Education[0].School == "changed" {
		t.Error("Education shared between clone and original")
	}
}

func TestCloneNil(t *testing.T) {
	var v *View
	if v.Clone() != nil {
		t.Error("Expected nil clone of nil view")
	}
}

func TestSkillsByCategory(t *testing.T) {
	v := &View{
		SkillCategories: []SkillGroup{
			{ID: "a", Name: "Languages", Skills: []string{"Go"}},
			{ID: "b", Name: "Cloud", Skills: []string{"AWS", "GCP"}},
		},
	}

	got := v.SkillsByCategory()
	want := map[string][]string{
		"Languages": {"Go"},
		"Cloud":     {"AWS", "GCP"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestLookupsByID(t *testing.T) {
	v := &View{
		SkillCategories: []SkillGroup{{ID: "c1", Name: "Languages"}},
		Experience:      []Experience{{ID: "e1", Company: "Acme"}},
		Education:       []Education{{ID: "ed1", School: "MIT"}},
	}

	if g, ok := v.SkillGroupByID("c1"); !ok || g.Name != "Languages" {
		t.Errorf("Expected to find skill group c1, got %v %v", g, ok)
	}
	if _, ok := v.SkillGroupByID("missing"); ok {
		t.Error("Expected missing skill group lookup to fail")
	}
	if e, ok := v.ExperienceByID("e1"); !ok || e.Company != "Acme" {
		t.Errorf("Expected to find experience e1, got %v %v", e, ok)
	}
	if e, ok := v.EducationByID("ed1"); !ok || e.School != "MIT" {
		t.Errorf("Expected to find education ed1, got %v %v", e, ok)
	}
}
