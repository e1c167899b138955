package model

// Requester is the authenticated caller as stamped on the request context.
type Requester struct {
	ID     string
	Role   string
	ClubID string
}
