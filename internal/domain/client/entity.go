package client

import "time"

// Client is a registered studio client. Created only after the consent
// acknowledgement; moved to the archive when consent is revoked.
type Client struct {
	ID         int64     `db:"id"`
	ExternalID int64     `db:"external_id"`
	Name       string    `db:"name"`
	Handle     string    `db:"handle"`
	CreatedAt  time.Time `db:"created_at"`
}

// ArchivedClient is a soft-deleted client kept after consent revocation.
type ArchivedClient struct {
	ID         int64     `db:"id"`
	ExternalID int64     `db:"external_id"`
	Name       string    `db:"name"`
	Handle     string    `db:"handle"`
	ArchivedAt time.Time `db:"archived_at"`
}
