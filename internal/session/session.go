package session

import "context"

// Flash is a one-time notification rendered on the next page after a
// redirect. Categories follow the original bootstrap-style names
// (danger, success, primary).
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Data is the server-side session record. UserID zero means anonymous.
type Data struct {
	UserID   uint    `json:"user_id"`
	Username string  `json:"username"`
	Flashes  []Flash `json:"flashes,omitempty"`
}

func (d *Data) LoggedIn() bool {
	return d.UserID != 0
}

// Store persists session records by ID. Get returns nil when the session
// is absent or expired.
type Store interface {
	Get(ctx context.Context, sid string) (*Data, error)
	Save(ctx context.Context, sid string, data *Data) error
	Delete(ctx context.Context, sid string) error
}
