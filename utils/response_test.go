package utils

import "testing"

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total      int64
		page       int
		limit      int
		totalPages int
		hasMore    bool
	}{
		{0, 1, 12, 0, false},
		{12, 1, 12, 1, false},
		{13, 1, 12, 2, true},
		{13, 2, 12, 2, false},
		{100, 3, 25, 4, true},
		{100, 4, 25, 4, false},
	}

	for _, c := range cases {
		p := NewPagination(c.total, c.page, c.limit)
		if p.TotalPages != c.totalPages {
			t.Errorf("total=%d limit=%d: expected %d pages, got %d", c.total, c.limit, c.totalPages, p.TotalPages)
		}
		if p.HasMore != c.hasMore {
			t.Errorf("total=%d page=%d: expected hasMore=%v, got %v", c.total, c.page, c.hasMore, p.HasMore)
		}
	}
}
