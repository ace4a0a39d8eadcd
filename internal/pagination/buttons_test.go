package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageButtons(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		totalPages int
		want       []int
	}{
		{
			name:       "No pages",
			current:    1,
			totalPages: 0,
			want:       nil,
		},
		{
			name:       "Single page",
			current:    1,
			totalPages: 1,
			want:       []int{1},
		},
		{
			name:       "Seven pages shown in full",
			current:    4,
			totalPages: 7,
			want:       []int{1, 2, 3, 4, 5, 6, 7},
		},
		{
			name:       "Near the start",
			current:    2,
			totalPages: 20,
			want:       []int{1, 2, 3, 4, 5, Ellipsis, 20},
		},
		{
			name:       "Start boundary at page four",
			current:    4,
			totalPages: 20,
			want:       []int{1, 2, 3, 4, 5, Ellipsis, 20},
		},
		{
			name:       "Middle window",
			current:    10,
			totalPages: 20,
			want:       []int{1, Ellipsis, 9, 10, 11, Ellipsis, 20},
		},
		{
			name:       "Near the end",
			current:    18,
			totalPages: 20,
			want:       []int{1, Ellipsis, 16, 17, 18, 19, 20},
		},
		{
			name:       "End boundary at last minus three",
			current:    17,
			totalPages: 20,
			want:       []int{1, Ellipsis, 16, 17, 18, 19, 20},
		},
		{
			name:       "First window ends at page five",
			current:    5,
			totalPages: 20,
			want:       []int{1, Ellipsis, 4, 5, 6, Ellipsis, 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageButtons(tt.current, tt.totalPages))
		})
	}
}
