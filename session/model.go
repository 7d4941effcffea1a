package session

// Meta is the metadata captured for one session at issuance time.
//
// Meta instances are written once and never mutated; revocation removes the
// whole entry.
type Meta struct {
	IP        string `json:"ip"`
	LoginAt   int64  `json:"login_at"`
	UserAgent string `json:"ua"`
}
