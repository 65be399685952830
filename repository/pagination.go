package repository

import (
	"math"

	"gorm.io/gorm"
)

const MaxPageSize = 100

// Page is a 1-based page request. Size <= 0 turns pagination off.
type Page struct {
	Size   int
	Number int
}

// AllRows disables pagination.
var AllRows = Page{}

// Normalize clamps Size to MaxPageSize and Number to at least 1.
func (p Page) Normalize() Page {
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Number < 1 {
		p.Number = 1
	}
	return p
}

func (p Page) Enabled() bool {
	return p.Size > 0
}

// Unreachable reports a page whose offset does not fit in an int. No
// table holds that many rows, so such a page is always empty.
func (p Page) Unreachable() bool {
	p = p.Normalize()
	return p.Enabled() && p.Number-1 > math.MaxInt/p.Size
}

// Offset is 0 for unreachable pages; callers check Unreachable first.
func (p Page) Offset() int {
	p = p.Normalize()
	if !p.Enabled() || p.Unreachable() {
		return 0
	}
	return p.Size * (p.Number - 1)
}

func (p Page) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		n := p.Normalize()
		if !n.Enabled() {
			return db
		}
		return db.Offset(n.Offset()).Limit(n.Size)
	}
}
