package shared

import "strconv"

// Pagination defaults. Garbage or missing query values silently fall back to
// these instead of failing the request.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRange is the parsed form of ?page=&limit=: the slice of the collection
// the caller asked for. End is the zero-based index of the last item on the
// page, handy for bounds-checking in-memory slices.
type PageRange struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	End    int `json:"end"`
}

// PageResult is the pagination block returned alongside a listed collection.
// Page is recomputed from the offset rather than echoed, so a hand-crafted
// offset still reports the page it actually landed on.
type PageResult struct {
	Total int `json:"total"`
	Limit int `json:"limit"`
	Page  int `json:"page"`
}

// Paginate parses page and limit query values into a PageRange. Values that
// are absent, non-numeric, zero, or negative fall back to the defaults and a
// floor of 1; there is no upper bound on limit.
func Paginate(pageParam, limitParam string) PageRange {
	page := parsePositive(pageParam, DefaultPage)
	limit := parsePositive(limitParam, DefaultLimit)

	offset := (page - 1) * limit
	return PageRange{
		Page:   page,
		Limit:  limit,
		Offset: offset,
		End:    offset + limit - 1,
	}
}

// DeriveResult builds the response pagination block for a collection of the
// given total size.
func (pr PageRange) DeriveResult(total int) PageResult {
	return PageResult{
		Total: total,
		Limit: pr.Limit,
		Page:  pr.Offset/pr.Limit + 1,
	}
}

// parsePositive parses s as a positive integer, substituting def on garbage
// and clamping the result to at least 1.
func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		n = def
	}
	if n < 1 {
		n = 1
	}
	return n
}
