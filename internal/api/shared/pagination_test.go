package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pageParam  string
		limitParam string
		want       PageRange
	}{
		{
			name:       "defaults on empty params",
			pageParam:  "",
			limitParam: "",
			want:       PageRange{Page: 1, Limit: 10, Offset: 0, End: 9},
		},
		{
			name:       "page 2 limit 10",
			pageParam:  "2",
			limitParam: "10",
			want:       PageRange{Page: 2, Limit: 10, Offset: 10, End: 19},
		},
		{
			name:       "garbage falls back to defaults",
			pageParam:  "abc",
			limitParam: "xyz",
			want:       PageRange{Page: 1, Limit: 10, Offset: 0, End: 9},
		},
		{
			name:       "zero and negative clamp to one",
			pageParam:  "0",
			limitParam: "-5",
			want:       PageRange{Page: 1, Limit: 1, Offset: 0, End: 0},
		},
		{
			name:       "no upper bound on limit",
			pageParam:  "1",
			limitParam: "5000",
			want:       PageRange{Page: 1, Limit: 5000, Offset: 0, End: 4999},
		},
		{
			name:       "fractional page is garbage",
			pageParam:  "1.5",
			limitParam: "10",
			want:       PageRange{Page: 1, Limit: 10, Offset: 0, End: 9},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Paginate(tc.pageParam, tc.limitParam))
		})
	}
}

func TestDeriveResult(t *testing.T) {
	t.Parallel()

	t.Run("page recomputed from offset", func(t *testing.T) {
		pr := Paginate("2", "10")
		assert.Equal(t, PageResult{Total: 25, Limit: 10, Page: 2}, pr.DeriveResult(25))
	})

	t.Run("first page", func(t *testing.T) {
		pr := Paginate("", "")
		assert.Equal(t, PageResult{Total: 3, Limit: 10, Page: 1}, pr.DeriveResult(3))
	})

	t.Run("empty collection", func(t *testing.T) {
		pr := Paginate("5", "20")
		assert.Equal(t, PageResult{Total: 0, Limit: 20, Page: 5}, pr.DeriveResult(0))
	})
}
