package admin

// LoginRequest carries the studio access key.
type LoginRequest struct {
	AccessKey string `json:"access_key" validate:"required,min=8"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type CreatePhotographerRequest struct {
	ExternalID   *int64  `json:"external_id" validate:"omitempty,gt=0"`
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Description  string  `json:"description" validate:"max=2000"`
	PortfolioURL string  `json:"portfolio_url" validate:"omitempty,url"`
	ServiceIDs   []int64 `json:"service_ids" validate:"dive,gt=0"`
}

type CreateServiceRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Cost     int64  `json:"cost" validate:"required,gt=0"`
	Duration int    `json:"duration" validate:"required,gt=0,lte=480"`
	Comment  string `json:"comment" validate:"max=1000"`
}

type OfferingRequest struct {
	ServiceID int64 `json:"service_id" validate:"required,gt=0"`
}

// WorkingHoursRequest declares a photographer's window for one day.
type WorkingHoursRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartHour int    `json:"start_hour" validate:"hour"`
	EndHour   int    `json:"end_hour" validate:"required,hour"`
}

type PhotographerResponse struct {
	ID           int64  `json:"id"`
	ExternalID   *int64 `json:"external_id,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	PortfolioURL string `json:"portfolio_url,omitempty"`
}

type ServiceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Cost     int64  `json:"cost"`
	Duration int    `json:"duration"`
	Comment  string `json:"comment,omitempty"`
}
