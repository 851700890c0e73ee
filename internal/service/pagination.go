package service

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Cursor identifies a position in an offset-paginated result set.
type Cursor struct {
	Position int
	Limit    int
}

func cursorWindow(cursor *Cursor) (limit, offset int) {
	limit = defaultLimit
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = min(cursor.Limit, maxLimit)
		}
		offset = max(cursor.Position, 0)
	}
	return limit, offset
}

// trimPage drops the extra row fetched past limit and reports whether another page exists.
func trimPage[T any](rows []*T, limit int) ([]*T, bool) {
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}
