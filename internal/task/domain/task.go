package domain

import (
	"strings"
	"time"

	userdomain "github.com/AlibekovAA/tasklist/backend/internal/user/domain"
)

type ID string

type Task struct {
	ID        ID
	OwnerID   userdomain.ID
	Text      string
	CreatedAt time.Time
}

type SortMode string

const (
	SortDefault SortMode = ""
	SortAsc     SortMode = "asc"
	SortDesc    SortMode = "desc"
)

// ParseSortMode maps a query value to a sort mode. Unknown values select the
// default recency order.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc
	case SortDesc:
		return SortDesc
	default:
		return SortDefault
	}
}

type ListQuery struct {
	Filter string
	Sort   SortMode
}
