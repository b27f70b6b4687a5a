package dto

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// PageQuery holds pagination query parameters
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize clamps pagination parameters to page >= 1 and 1 <= limit <= 100,
// falling back to defaults for absent or out-of-range values.
func (p *PageQuery) Normalize() {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
}
