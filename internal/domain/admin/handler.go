package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/artik0811/vkr-photostudio/internal/domain/photographer"
	"github.com/artik0811/vkr-photostudio/internal/domain/schedule"
	"github.com/artik0811/vkr-photostudio/internal/domain/service"
	"github.com/artik0811/vkr-photostudio/internal/pkg/jwt"
	"github.com/artik0811/vkr-photostudio/internal/pkg/password"
	"github.com/artik0811/vkr-photostudio/internal/pkg/response"
	"github.com/artik0811/vkr-photostudio/internal/pkg/validator"
)

// Handler exposes the provisioning API. Photographers and services are
// never created through the conversation; this is the only write path.
type Handler struct {
	photographers photographer.Repository
	services      service.Repository
	hours         schedule.Repository
	jwtService    *jwt.Service
	accessKeyHash string
}

func NewHandler(photographers photographer.Repository, services service.Repository, hours schedule.Repository, jwtService *jwt.Service, accessKeyHash string) *Handler {
	return &Handler{
		photographers: photographers,
		services:      services,
		hours:         hours,
		jwtService:    jwtService,
		accessKeyHash: accessKeyHash,
	}
}

// Login handles POST /admin/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if h.accessKeyHash == "" {
		response.Forbidden(w, "Admin access is not configured")
		return
	}

	if !password.Verify(req.AccessKey, h.accessKeyHash) {
		response.Unauthorized(w, "Invalid access key")
		return
	}

	token, err := h.jwtService.GenerateAccessToken("admin")
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, &LoginResponse{AccessToken: token})
}

// ListPhotographers handles GET /admin/photographers
func (h *Handler) ListPhotographers(w http.ResponseWriter, r *http.Request) {
	photographers, err := h.photographers.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]PhotographerResponse, 0, len(photographers))
	for _, p := range photographers {
		out = append(out, photographerResponse(&p))
	}
	response.OK(w, out)
}

// CreatePhotographer handles POST /admin/photographers
func (h *Handler) CreatePhotographer(w http.ResponseWriter, r *http.Request) {
	var req CreatePhotographerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p := &photographer.Photographer{
		ExternalID: req.ExternalID,
		Name:       req.Name,
	}
	if req.Description != "" {
		p.Description = &req.Description
	}
	if req.PortfolioURL != "" {
		p.PortfolioURL = &req.PortfolioURL
	}

	if err := h.photographers.Create(r.Context(), p); err != nil {
		response.InternalError(w)
		return
	}

	for _, serviceID := range req.ServiceIDs {
		if err := h.photographers.AssignService(r.Context(), p.ID, serviceID); err != nil {
			response.InternalError(w)
			return
		}
	}

	response.Created(w, photographerResponse(p))
}

// AssignService handles POST /admin/photographers/{id}/services
func (h *Handler) AssignService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req OfferingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if _, err := h.photographers.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, photographer.ErrNotFound) {
			response.NotFound(w, "Photographer not found")
			return
		}
		response.InternalError(w)
		return
	}
	if _, err := h.services.GetByID(r.Context(), req.ServiceID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(w, "Service not found")
			return
		}
		response.InternalError(w)
		return
	}

	if err := h.photographers.AssignService(r.Context(), id, req.ServiceID); err != nil {
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// UnassignService handles DELETE /admin/photographers/{id}/services/{serviceID}
func (h *Handler) UnassignService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	serviceID, ok := pathInt64(w, r, "serviceID")
	if !ok {
		return
	}

	if err := h.photographers.UnassignService(r.Context(), id, serviceID); err != nil {
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// SetWorkingHours handles PUT /admin/photographers/{id}/working-hours,
// the out-of-band way to seed a schedule before the photographer takes
// over from the chat.
func (h *Handler) SetWorkingHours(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req WorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if _, err := h.photographers.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, photographer.ErrNotFound) {
			response.NotFound(w, "Photographer not found")
			return
		}
		response.InternalError(w)
		return
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(w, "Invalid date")
		return
	}

	err = h.hours.Upsert(r.Context(), schedule.WorkingHours{
		PhotographerID: id,
		Date:           day,
		StartHour:      req.StartHour,
		EndHour:        req.EndHour,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidHours) {
			response.BadRequest(w, "Start hour must be before end hour")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// ListServices handles GET /admin/services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.services.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, serviceResponse(&s))
	}
	response.OK(w, out)
}

// CreateService handles POST /admin/services
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	s := &service.Service{
		Name:     req.Name,
		Cost:     req.Cost,
		Duration: req.Duration,
	}
	if req.Comment != "" {
		s.Comment = &req.Comment
	}

	if err := h.services.Create(r.Context(), s); err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, serviceResponse(s))
}

func photographerResponse(p *photographer.Photographer) PhotographerResponse {
	out := PhotographerResponse{
		ID:         p.ID,
		ExternalID: p.ExternalID,
		Name:       p.Name,
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.PortfolioURL != nil {
		out.PortfolioURL = *p.PortfolioURL
	}
	return out
}

func serviceResponse(s *service.Service) ServiceResponse {
	out := ServiceResponse{
		ID:       s.ID,
		Name:     s.Name,
		Cost:     s.Cost,
		Duration: s.Duration,
	}
	if s.Comment != nil {
		out.Comment = *s.Comment
	}
	return out
}
