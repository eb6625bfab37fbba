package editor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nikogura/portfolio-admin/pkg/api"
	"github.com/nikogura/portfolio-admin/pkg/backendtest"
	"github.com/nikogura/portfolio-admin/pkg/client"
	"github.com/nikogura/portfolio-admin/pkg/model"
	"github.com/nikogura/portfolio-admin/pkg/portfolio"
	"github.com/nikogura/portfolio-admin/pkg/services"
	"github.com/nikogura/portfolio-admin/pkg/storage"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type recordingAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (a *recordingAlerter) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
}

func (a *recordingAlerter) all() (out []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out = append([]string{}, a.messages...)
	return out
}

type fixture struct {
	backend *backendtest.Server
	session *Session
	alerts  *recordingAlerter
	profile api.Profile
	expA    api.Experience
	expB    api.Experience
	edu     api.Education
	cat     api.SkillCategory
	other   api.OtherSkill
}

func newFixture(t *testing.T) (f *fixture) {
	t.Helper()

	backend := backendtest.New()
	t.Cleanup(backend.Close)

	f = &fixture{backend: backend, alerts: &recordingAlerter{}}
	f.profile = backend.SeedProfile(api.Profile{Name: "Ada", Role: "Engineer", Bio: "old", Email: "ada@example.com"})
	f.expA = backend.SeedExperience(api.ExperienceWrite{CompanyName: "Acme", Role: "Lead", Duties: []string{"Lead"}, Domains: []string{}})
	f.expB = backend.SeedExperience(api.ExperienceWrite{CompanyName: "Initech", Role: "Dev", Duties: []string{"Code"}, Domains: []string{"Finance"}})
	f.edu = backend.SeedEducation(api.EducationWrite{School: "MIT", Degree: "BSc", Major: "CS"})
	f.cat = backend.SeedCategory("Backend", 0, "Go", "SQL")
	f.other = backend.SeedOtherSkill("Mentoring")

	store := storage.NewMemory(nil)
	svc := services.New(client.NewClient(backend.URL(), store, nil), store)
	provider := portfolio.NewProvider(svc, nil)

	f.session = NewSession(provider, svc, f.alerts, nil)
	require.NoError(t, f.session.Load(context.Background()))
	f.session.SetAdmin(true)
	backend.ResetRequests()

	return f
}

func TestViewFallsBackWithoutData(t *testing.T) {
	svc := services.New(client.NewClient("http://127.0.0.1:1", nil, nil), nil)
	session := NewSession(portfolio.NewProvider(svc, nil), svc, nil, nil)

	if diff := cmp.Diff(model.Fallback(), session.View()); diff != "" {
		t.Errorf("expected the placeholder view (-want +got):\n%s", diff)
	}
}

func TestEditRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	f.session.SetAdmin(false)

	err := f.session.Edit(SectionBio, f.profile.ID)
	assert.ErrorIs(t, err, ErrNotAdmin)

	f.session.SetAdmin(true)
	require.NoError(t, f.session.Edit(SectionBio, f.profile.ID))

	editing, ok := f.session.Editing()
	require.True(t, ok)
	assert.Equal(t, Editing{Section: SectionBio, ID: f.profile.ID}, editing)

	f.session.SetAdmin(false)
	_, ok = f.session.Editing()
	assert.False(t, ok, "leaving admin mode closes the form")
}

func TestSaveRequiresOpenSection(t *testing.T) {
	f := newFixture(t)

	err := f.session.SaveBio(context.Background(), BioForm{Bio: "new"})
	assert.ErrorIs(t, err, ErrNotEditing)

	require.NoError(t, f.session.Edit(SectionProfile, f.profile.ID))
	err = f.session.SaveBio(context.Background(), BioForm{Bio: "new"})
	assert.ErrorIs(t, err, ErrNotEditing)

	f.session.Cancel()
	_, ok := f.session.Editing()
	assert.False(t, ok)
	assert.Empty(t, f.backend.EntityWrites())
}

func TestSaveBioPatchesOnlyBio(t *testing.T) {
	f := newFixture(t)
	before := f.session.View()

	require.NoError(t, f.session.Edit(SectionBio, f.profile.ID))
	require.NoError(t, f.session.SaveBio(context.Background(), BioForm{Bio: "new"}))

	writes := f.backend.EntityWrites()
	require.Len(t, writes, 1)
	assert.Equal(t, http.MethodPut, writes[0].Method)
	assert.Equal(t, "/profile/"+f.profile.ID, writes[0].Path)
	assert.JSONEq(t, `{"bio":"new"}`, string(writes[0].Body))

	want := before.Clone()
	want.Profile.Bio = "new"
	if diff := cmp.Diff(want, f.session.View()); diff != "" {
		t.Errorf("only profile.bio should change (-want +got):\n%s", diff)
	}

	_, ok := f.session.Editing()
	assert.False(t, ok, "form closes on success")
	assert.Equal(t, "new", f.backend.Profile().Bio)
	assert.Equal(t, 0, f.backend.Count(http.MethodGet, "/profile"), "no refetch after a save")
}

func TestSaveProfileKeepsBio(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.session.Edit(SectionProfile, f.profile.ID))
	require.NoError(t, f.session.SaveProfile(context.Background(), ProfileForm{Name: "Ada L.", Role: "CTO", Email: "ada@example.com"}))

	view := f.session.View()
	require.NotNil(t, view.Profile)
	assert.Equal(t, "Ada L.", view.Profile.Name)
	assert.Equal(t, "CTO", view.Profile.Role)
	assert.Equal(t, "old", view.Profile.Bio)
	assert.Equal(t, f.profile.ID, view.Profile.ID)

	body := gjson.ParseBytes(f.backend.EntityWrites()[0].Body)
	assert.False(t, body.Get("bio").Exists(), "profile form never sends the bio")
	assert.Equal(t, "Ada L.", body.Get("name").String())
}

func TestSaveProfileClearsEmptiedFields(t *testing.T) {
	f := newFixture(t)
	f.backend.SeedProfile(api.Profile{
		ID:        f.profile.ID,
		Name:      "Ada",
		Bio:       "old",
		Phone:     "555",
		GitHubURL: "https://github.com/ada",
	})
	require.NoError(t, f.session.Retry(context.Background()))
	require.Equal(t, "555", f.session.View().Profile.Phone)
	f.backend.ResetRequests()

	require.NoError(t, f.session.Edit(SectionProfile, f.profile.ID))
	require.NoError(t, f.session.SaveProfile(context.Background(), ProfileForm{Name: "Ada"}))

	body := gjson.ParseBytes(f.backend.EntityWrites()[0].Body)
	assert.True(t, body.Get("phone").Exists())
	assert.Empty(t, body.Get("phone").String())
	assert.True(t, body.Get("github_url").Exists())

	stored := f.backend.Profile()
	assert.Empty(t, stored.Phone)
	assert.Empty(t, stored.GitHubURL)
	assert.Equal(t, "old", stored.Bio)

	require.NoError(t, f.session.Retry(context.Background()))
	view := f.session.View()
	assert.Empty(t, view.Profile.Phone)
	assert.Empty(t, view.Profile.GitHub)
	assert.Equal(t, "old", view.Profile.Bio)
}

func TestFailedSaveRevertsToLastFetch(t *testing.T) {
	f := newFixture(t)
	snapshot := f.session.View()

	// a successful optimistic change that the provider snapshot does not know about
	require.NoError(t, f.session.Edit(SectionOtherSkills, model.NewID))
	require.NoError(t, f.session.SaveOtherSkill(context.Background(), OtherSkillForm{Skill: "Public speaking"}))
	assert.Len(t, f.session.View().OtherSkills, 2)

	f.backend.FailNext(http.MethodPut, "/experience/"+f.expA.ID, http.StatusBadRequest, "Role is required")

	require.NoError(t, f.session.Edit(SectionExperience, f.expA.ID))
	err := f.session.SaveExperience(context.Background(), model.Experience{Company: "Acme"})
	require.Error(t, err)

	if diff := cmp.Diff(snapshot, f.session.View()); diff != "" {
		t.Errorf("local state should equal the last fetch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"Error saving: Role is required"}, f.alerts.all())
	assert.Equal(t, "Role is required", f.session.LastError())

	editing, ok := f.session.Editing()
	assert.True(t, ok, "form stays open after a failure")
	assert.Equal(t, SectionExperience, editing.Section)
}

func TestExperienceCreatePrependsAndUpdateReplacesInPlace(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.session.Edit(SectionExperience, model.NewID))
	require.NoError(t, f.session.SaveExperience(context.Background(), model.Experience{
		Company: "Globex",
		Role:    "Architect",
		Period:  "2024 - now",
		Duties:  []string{"Design"},
	}))

	list := f.session.View().Experience
	require.Len(t, list, 3)
	assert.Equal(t, "Globex", list[0].Company)
	assert.NotEmpty(t, list[0].ID)
	assert.Equal(t, []string{"Design"}, list[0].Duties)
	assert.Equal(t, []string{}, list[0].Domain)
	assert.Equal(t, f.expA.ID, list[1].ID)
	assert.Equal(t, f.expB.ID, list[2].ID)

	require.NoError(t, f.session.Edit(SectionExperience, f.expA.ID))
	require.NoError(t, f.session.SaveExperience(context.Background(), model.Experience{Company: "Acme Corp", Role: "Lead", Duties: []string{"Lead", "Hire"}}))

	list = f.session.View().Experience
	require.Len(t, list, 3)
	assert.Equal(t, "Globex", list[0].Company)
	assert.Equal(t, f.expA.ID, list[1].ID)
	assert.Equal(t, "Acme Corp", list[1].Company)
	assert.Equal(t, []string{"Lead", "Hire"}, list[1].Duties)
	assert.Equal(t, f.expB.ID, list[2].ID)
}

func TestEducationCreatePrependsAndUpdateReplaces(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.session.Edit(SectionEducation, model.NewID))
	require.NoError(t, f.session.SaveEducation(context.Background(), model.Education{School: "ETH", Degree: "MSc", Major: "CS", Year: "2015"}))

	list := f.session.View().Education
	require.Len(t, list, 2)
	assert.Equal(t, "ETH", list[0].School)
	assert.Equal(t, "2015", list[0].Year)

	require.NoError(t, f.session.Edit(SectionEducation, f.edu.ID))
	require.NoError(t, f.session.SaveEducation(context.Background(), model.Education{School: "MIT", Degree: "PhD", Major: "CS"}))

	list = f.session.View().Education
	assert.Equal(t, "ETH", list[0].School)
	assert.Equal(t, f.edu.ID, list[1].ID)
	assert.Equal(t, "PhD", list[1].Degree)
}

func TestOtherSkillRename(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.session.Edit(SectionOtherSkills, f.other.ID))
	require.NoError(t, f.session.SaveOtherSkill(context.Background(), OtherSkillForm{Skill: "Coaching"}))

	assert.Equal(t, []model.OtherSkill{{ID: f.other.ID, Name: "Coaching"}}, f.session.View().OtherSkills)
}

func TestAddSkillCategory(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.session.Edit(SectionSkillsAdd, model.NewID))
	require.NoError(t, f.session.AddSkillCategory(context.Background(), SkillsForm{Category: "Frontend", Skills: []string{"React", "CSS"}}))

	groups := f.session.View().SkillCategories
	require.Len(t, groups, 2)
	added := groups[1]
	assert.Equal(t, "Frontend", added.Name)
	assert.Equal(t, []string{"React", "CSS"}, added.Skills)

	stored, ok := f.backend.Category(added.ID)
	require.True(t, ok)
	assert.Equal(t, 1, stored.DisplayOrder)
	assert.Len(t, stored.Skills, 2)
	assert.Equal(t, 2, f.backend.Count(http.MethodPost, "/skills"))
}

func TestSaveSkillsReconcilesWithBackend(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.session.Edit(SectionSkills, f.cat.ID))
	require.NoError(t, f.session.SaveSkills(context.Background(), SkillsForm{Category: "Server side", Skills: []string{"Go", "Kafka"}}))

	assert.Equal(t, []model.SkillGroup{{ID: f.cat.ID, Name: "Server side", Skills: []string{"Go", "Kafka"}}}, f.session.View().SkillCategories)

	stored, ok := f.backend.Category(f.cat.ID)
	require.True(t, ok)
	assert.Equal(t, "Server side", stored.Name)

	names := []string{}
	for _, s := range stored.Skills {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"Go", "Kafka"}, names)
}

func TestSaveSkillsFailureReverts(t *testing.T) {
	f := newFixture(t)
	snapshot := f.session.View()

	f.backend.FailNext(http.MethodPost, "/skills", http.StatusInternalServerError, "")

	require.NoError(t, f.session.Edit(SectionSkills, f.cat.ID))
	err := f.session.SaveSkills(context.Background(), SkillsForm{Category: "Backend", Skills: []string{"Go", "SQL", "Rust"}})
	require.Error(t, err)

	assert.Equal(t, snapshot, f.session.View())
	assert.Equal(t, []string{"Error saving: HTTP 500: Internal Server Error"}, f.alerts.all())
}

func TestDeletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.session.DeleteExperience(ctx, f.expA.ID))
	require.NoError(t, f.session.DeleteEducation(ctx, f.edu.ID))
	require.NoError(t, f.session.DeleteOtherSkill(ctx, f.other.ID))
	require.NoError(t, f.session.DeleteSkillCategory(ctx, f.cat.ID))

	view := f.session.View()
	require.Len(t, view.Experience, 1)
	assert.Equal(t, f.expB.ID, view.Experience[0].ID)
	assert.Empty(t, view.Education)
	assert.Empty(t, view.OtherSkills)
	assert.Empty(t, view.SkillCategories)

	f.backend.FailNext(http.MethodDelete, "/experience/"+f.expB.ID, http.StatusNotFound, "Experience not found")
	err := f.session.DeleteExperience(ctx, f.expB.ID)
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))

	// reverted to the initial fetch, which still holds both entries
	assert.Len(t, f.session.View().Experience, 2)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	f.session.SetAdmin(false)

	err := f.session.DeleteOtherSkill(context.Background(), f.other.ID)
	assert.ErrorIs(t, err, ErrNotAdmin)
	assert.Empty(t, f.backend.EntityWrites())
}

func TestCVPreviewWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.backend.SetExtraction(api.CVExtraction{
		Profile:         &api.ProfileExtraction{Name: "Grace", Bio: "extracted"},
		Experiences:     []api.ExperienceWrite{{CompanyName: "Navy", Role: "Officer", Duties: []string{"Compile"}}},
		SkillCategories: []api.SkillCategoryExtraction{{CategoryName: "Languages", Skills: []string{"COBOL"}}},
		OtherSkills:     []string{"Teaching"},
	})

	resp, err := f.session.ProcessCV(context.Background(), services.CVFile{Name: "cv.PDF", Content: strings.NewReader("%PDF-1.4")}, api.ModePreview)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	assert.Empty(t, f.backend.EntityWrites(), "preview never writes entities")
	assert.Equal(t, 1, f.backend.Count(http.MethodPost, "/cv/process"))

	view := f.session.View()
	require.NotNil(t, view.Profile)
	assert.Equal(t, "Grace", view.Profile.Name)
	assert.Equal(t, "Navy", view.Experience[0].Company)
	assert.Equal(t, "Languages", view.SkillCategories[0].Name)
	assert.Equal(t, CVIdle, f.session.CVState())
	assert.Equal(t, []string{PreviewReadyMessage}, f.alerts.all())

	// backend data is untouched
	assert.Equal(t, "Ada", f.backend.Profile().Name)
}

func TestCVReplaceRefetchesOnce(t *testing.T) {
	f := newFixture(t)
	f.backend.SetExtraction(api.CVExtraction{
		Profile:     &api.ProfileExtraction{Name: "Grace"},
		Educations:  []api.EducationWrite{{School: "Yale", Degree: "PhD", Major: "Math"}},
		OtherSkills: []string{"Teaching"},
	})

	// pending optimistic state that replace must discard
	require.NoError(t, f.session.Edit(SectionOtherSkills, model.NewID))
	require.NoError(t, f.session.SaveOtherSkill(context.Background(), OtherSkillForm{Skill: "Local only"}))
	f.backend.ResetRequests()

	_, err := f.session.ProcessCV(context.Background(), services.CVFile{Name: "cv.pdf", Content: strings.NewReader("%PDF-1.4")}, api.ModeReplace)
	require.NoError(t, err)

	assert.Empty(t, f.backend.EntityWrites(), "no per-entity writes from the client")
	for _, path := range []string{"/profile", "/skills/categories", "/other-skills", "/experience", "/education"} {
		assert.Equal(t, 1, f.backend.Count(http.MethodGet, path), path)
	}

	view := f.session.View()
	assert.Equal(t, "Grace", view.Profile.Name)
	assert.Equal(t, f.profile.ID, view.Profile.ID)
	require.Len(t, view.OtherSkills, 1)
	assert.Equal(t, "Teaching", view.OtherSkills[0].Name)
	assert.Equal(t, "Yale", view.Education[0].School)
	assert.Empty(t, view.Experience)
}

func TestCVReplaceReloadFailureDropsLocalEdits(t *testing.T) {
	f := newFixture(t)
	f.backend.SetExtraction(api.CVExtraction{OtherSkills: []string{"Teaching"}})

	require.NoError(t, f.session.Edit(SectionOtherSkills, model.NewID))
	require.NoError(t, f.session.SaveOtherSkill(context.Background(), OtherSkillForm{Skill: "Local only"}))
	require.Len(t, f.session.View().OtherSkills, 2)

	f.backend.FailNext(http.MethodGet, "/education", http.StatusBadGateway, "upstream down")

	_, err := f.session.ProcessCV(context.Background(), services.CVFile{Name: "cv.pdf", Content: strings.NewReader("%PDF-1.4")}, api.ModeReplace)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reload portfolio after CV replace")

	view := f.session.View()
	require.Len(t, view.OtherSkills, 1)
	assert.Equal(t, "Mentoring", view.OtherSkills[0].Name, "last fetched data, without the local edit")
}

func TestCVRejectsNonPDF(t *testing.T) {
	f := newFixture(t)

	_, err := f.session.ProcessCV(context.Background(), services.CVFile{Name: "cv.docx", Content: strings.NewReader("x")}, api.ModePreview)
	assert.ErrorIs(t, err, ErrNotPDF)
	assert.Equal(t, 0, f.backend.Count(http.MethodPost, "/cv/process"))
	assert.Equal(t, []string{ErrNotPDF.Error()}, f.alerts.all())
}

func TestCVFailureAlerts(t *testing.T) {
	f := newFixture(t)
	before := f.session.View()
	f.backend.FailNext(http.MethodPost, "/cv/process", http.StatusUnprocessableEntity, "Could not read PDF")

	_, err := f.session.ProcessCV(context.Background(), services.CVFile{Name: "cv.pdf", Content: strings.NewReader("%PDF")}, api.ModePreview)
	require.Error(t, err)

	assert.Equal(t, []string{"Failed to process CV: Could not read PDF"}, f.alerts.all())
	assert.Equal(t, before, f.session.View())
	assert.Equal(t, CVIdle, f.session.CVState())
}

func TestEditsRefusedWhileProcessingCV(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cv/process" {
			close(started)
			<-release
		}
		_, _ = w.Write([]byte(`{"message":"ok","success":true,"data":{}}`))
	}))
	defer server.Close()

	svc := services.New(client.NewClient(server.URL, nil, nil), nil)
	session := NewSession(portfolio.NewProvider(svc, nil), svc, nil, nil)
	session.SetAdmin(true)

	done := make(chan error, 1)
	go func() {
		_, err := session.ProcessCV(context.Background(), services.CVFile{Name: "cv.pdf", Content: strings.NewReader("%PDF")}, api.ModePreview)
		done <- err
	}()

	<-started
	assert.Equal(t, CVProcessing, session.CVState())
	assert.ErrorIs(t, session.Edit(SectionBio, "x"), ErrBusy)
	assert.ErrorIs(t, session.DeleteOtherSkill(context.Background(), "x"), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, CVIdle, session.CVState())
	assert.NoError(t, session.Edit(SectionBio, "x"))
}

func TestRetryAfterInitialFailure(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()
	backend.SeedOtherSkill("Mentoring")
	backend.FailNext(http.MethodGet, "/education", http.StatusServiceUnavailable, "maintenance")

	store := storage.NewMemory(nil)
	svc := services.New(client.NewClient(backend.URL(), store, nil), store)
	provider := portfolio.NewProvider(svc, nil)
	session := NewSession(provider, svc, nil, nil)

	err := session.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "maintenance", provider.Error())
	assert.Equal(t, model.Fallback(), session.View())

	require.NoError(t, session.Retry(context.Background()))
	assert.Empty(t, provider.Error())
	assert.Equal(t, "Mentoring", session.View().OtherSkills[0].Name)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, ParseSkillList(" Go, ,SQL ,"))
	assert.Equal(t, []string{}, ParseSkillList(""))
	assert.Equal(t, []string{"one", "  two"}, ParseLines("one\n\n  two\n   \n"))
}

func TestSaveBioWithoutProfile(t *testing.T) {
	backend := backendtest.New()
	defer backend.Close()

	store := storage.NewMemory(nil)
	svc := services.New(client.NewClient(backend.URL(), store, nil), store)
	alerts := &recordingAlerter{}
	session := NewSession(portfolio.NewProvider(svc, nil), svc, alerts, nil)
	require.NoError(t, session.Load(context.Background()))
	session.SetAdmin(true)

	require.NoError(t, session.Edit(SectionBio, ""))
	err := session.SaveBio(context.Background(), BioForm{Bio: "x"})
	assert.True(t, errors.Is(err, ErrNoProfile))
	assert.Len(t, alerts.all(), 1)
}
