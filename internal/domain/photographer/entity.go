package photographer

// Photographer is a service provider. Rows are provisioned through the
// admin API, never through the conversation.
type Photographer struct {
	ID           int64   `db:"id"`
	ExternalID   *int64  `db:"external_id"`
	Name         string  `db:"name"`
	Description  *string `db:"description"`
	PortfolioURL *string `db:"portfolio_url"`
}
