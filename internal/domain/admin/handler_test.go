package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/artik0811/vkr-photostudio/internal/domain/photographer"
	"github.com/artik0811/vkr-photostudio/internal/domain/schedule"
	"github.com/artik0811/vkr-photostudio/internal/domain/service"
	"github.com/artik0811/vkr-photostudio/internal/pkg/jwt"
)

type fakePhotographers struct {
	created  []*photographer.Photographer
	assigned [][2]int64
	nextID   int64
}

func (f *fakePhotographers) GetByID(ctx context.Context, id int64) (*photographer.Photographer, error) {
	for _, p := range f.created {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, photographer.ErrNotFound
}

func (f *fakePhotographers) GetByExternalID(ctx context.Context, externalID int64) (*photographer.Photographer, error) {
	return nil, photographer.ErrNotFound
}

func (f *fakePhotographers) List(ctx context.Context) ([]photographer.Photographer, error) {
	out := make([]photographer.Photographer, 0, len(f.created))
	for _, p := range f.created {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePhotographers) ListByService(ctx context.Context, serviceID int64) ([]photographer.Photographer, error) {
	return nil, nil
}

func (f *fakePhotographers) IDsByService(ctx context.Context, serviceID int64) ([]int64, error) {
	return nil, nil
}

func (f *fakePhotographers) Create(ctx context.Context, p *photographer.Photographer) error {
	f.nextID++
	p.ID = f.nextID
	f.created = append(f.created, p)
	return nil
}

func (f *fakePhotographers) UpdateDescription(ctx context.Context, id int64, description string) error {
	return nil
}

func (f *fakePhotographers) UpdatePortfolio(ctx context.Context, id int64, portfolioURL string) error {
	return nil
}

func (f *fakePhotographers) AssignService(ctx context.Context, photographerID, serviceID int64) error {
	f.assigned = append(f.assigned, [2]int64{photographerID, serviceID})
	return nil
}

func (f *fakePhotographers) UnassignService(ctx context.Context, photographerID, serviceID int64) error {
	return nil
}

type fakeServices struct {
	created []*service.Service
	nextID  int64
}

func (f *fakeServices) GetByID(ctx context.Context, id int64) (*service.Service, error) {
	for _, s := range f.created {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, service.ErrNotFound
}

func (f *fakeServices) List(ctx context.Context) ([]service.Service, error) {
	out := make([]service.Service, 0, len(f.created))
	for _, s := range f.created {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeServices) Create(ctx context.Context, s *service.Service) error {
	f.nextID++
	s.ID = f.nextID
	f.created = append(f.created, s)
	return nil
}

type fakeHours struct {
	upserted []schedule.WorkingHours
}

func (f *fakeHours) Get(ctx context.Context, photographerID int64, date time.Time) (*schedule.WorkingHours, error) {
	return nil, nil
}

func (f *fakeHours) Upsert(ctx context.Context, w schedule.WorkingHours) error {
	if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
		return schedule.ErrInvalidHours
	}
	f.upserted = append(f.upserted, w)
	return nil
}

const testAccessKey = "studio-access-key"

func newTestHandler(t *testing.T) (*Handler, *fakePhotographers, *fakeServices, *fakeHours) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAccessKey), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash access key: %v", err)
	}

	photographers := &fakePhotographers{}
	services := &fakeServices{}
	hours := &fakeHours{}
	jwtService := jwt.NewService("test-secret", time.Hour)

	return NewHandler(photographers, services, hours, jwtService, string(hash)), photographers, services, hours
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()

	body, _ := json.Marshal(LoginRequest{AccessKey: testAccessKey})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return envelope.Data.AccessToken
}

func TestLoginRejectsWrongKey(t *testing.T) {
	h, _, _, _ := newTestHandler(t)
	router := h.Routes()

	body, _ := json.Marshal(LoginRequest{AccessKey: "wrong-key-here"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	h, _, _, _ := newTestHandler(t)

	token := login(t, h.Routes())
	if token == "" {
		t.Fatal("empty access token")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h, _, _, _ := newTestHandler(t)
	router := h.Routes()

	req := httptest.NewRequest(http.MethodGet, "/photographers/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreatePhotographerAssignsServices(t *testing.T) {
	h, photographers, services, _ := newTestHandler(t)
	router := h.Routes()
	token := login(t, router)

	services.Create(context.Background(), &service.Service{Name: "Portrait", Cost: 5000, Duration: 60})

	external := int64(200)
	body, _ := json.Marshal(CreatePhotographerRequest{
		ExternalID: &external,
		Name:       "Pavel",
		ServiceIDs: []int64{1},
	})
	req := httptest.NewRequest(http.MethodPost, "/photographers/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(photographers.created) != 1 || photographers.created[0].Name != "Pavel" {
		t.Fatalf("created = %+v", photographers.created)
	}
	if len(photographers.assigned) != 1 || photographers.assigned[0] != [2]int64{1, 1} {
		t.Fatalf("assigned = %v", photographers.assigned)
	}
}

func TestCreatePhotographerValidation(t *testing.T) {
	h, _, _, _ := newTestHandler(t)
	router := h.Routes()
	token := login(t, router)

	body, _ := json.Marshal(CreatePhotographerRequest{Name: "P"})
	req := httptest.NewRequest(http.MethodPost, "/photographers/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateService(t *testing.T) {
	h, _, services, _ := newTestHandler(t)
	router := h.Routes()
	token := login(t, router)

	body, _ := json.Marshal(CreateServiceRequest{Name: "Portrait", Cost: 5000, Duration: 90})
	req := httptest.NewRequest(http.MethodPost, "/services/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(services.created) != 1 || services.created[0].Duration != 90 {
		t.Fatalf("created = %+v", services.created)
	}
}

func TestAssignServiceChecksExistence(t *testing.T) {
	h, photographers, _, _ := newTestHandler(t)
	router := h.Routes()
	token := login(t, router)

	photographers.Create(context.Background(), &photographer.Photographer{Name: "Pavel"})

	body, _ := json.Marshal(OfferingRequest{ServiceID: 42})
	req := httptest.NewRequest(http.MethodPost, "/photographers/1/services", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSetWorkingHours(t *testing.T) {
	h, photographers, _, hours := newTestHandler(t)
	router := h.Routes()
	token := login(t, router)

	photographers.Create(context.Background(), &photographer.Photographer{Name: "Pavel"})

	body, _ := json.Marshal(WorkingHoursRequest{Date: "2026-09-14", StartHour: 9, EndHour: 18})
	req := httptest.NewRequest(http.MethodPut, "/photographers/1/working-hours", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(hours.upserted) != 1 {
		t.Fatalf("upserted = %+v", hours.upserted)
	}
	w := hours.upserted[0]
	if w.PhotographerID != 1 || w.StartHour != 9 || w.EndHour != 18 || w.Date.Format("2006-01-02") != "2026-09-14" {
		t.Fatalf("window = %+v", w)
	}
}

func TestSetWorkingHoursRejectsBadHour(t *testing.T) {
	h, photographers, _, hours := newTestHandler(t)
	router := h.Routes()
	token := login(t, router)

	photographers.Create(context.Background(), &photographer.Photographer{Name: "Pavel"})

	body, _ := json.Marshal(WorkingHoursRequest{Date: "2026-09-14", StartHour: 9, EndHour: 25})
	req := httptest.NewRequest(http.MethodPut, "/photographers/1/working-hours", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(hours.upserted) != 0 {
		t.Fatalf("upserted = %+v", hours.upserted)
	}
}

func TestSetWorkingHoursRejectsInvertedWindow(t *testing.T) {
	h, photographers, _, hours := newTestHandler(t)
	router := h.Routes()
	token := login(t, router)

	photographers.Create(context.Background(), &photographer.Photographer{Name: "Pavel"})

	body, _ := json.Marshal(WorkingHoursRequest{Date: "2026-09-14", StartHour: 18, EndHour: 9})
	req := httptest.NewRequest(http.MethodPut, "/photographers/1/working-hours", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(hours.upserted) != 0 {
		t.Fatalf("upserted = %+v", hours.upserted)
	}
}
