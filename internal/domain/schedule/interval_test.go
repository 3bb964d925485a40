package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tr(startHour, startMin, endHour, endMin int) TimeRange {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return TimeRange{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeRange
		want bool
	}{
		{"partial overlap", tr(10, 0, 11, 0), tr(10, 30, 11, 30), true},
		{"b inside a", tr(9, 0, 12, 0), tr(10, 0, 11, 0), true},
		{"identical", tr(10, 0, 11, 0), tr(10, 0, 11, 0), true},
		{"touching at endpoint", tr(10, 0, 11, 0), tr(11, 0, 12, 0), false},
		{"disjoint", tr(9, 0, 10, 0), tr(14, 0, 15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			// simetria
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestOverlapsSelf(t *testing.T) {
	a := tr(10, 0, 11, 0)
	assert.True(t, Overlaps(a, a))
}

func TestContains(t *testing.T) {
	outer := tr(9, 0, 13, 0)

	assert.True(t, Contains(outer, tr(9, 0, 13, 0)))
	assert.True(t, Contains(outer, tr(10, 0, 11, 0)))
	assert.True(t, Contains(outer, tr(9, 0, 10, 0)))
	assert.True(t, Contains(outer, tr(12, 0, 13, 0)))

	assert.False(t, Contains(outer, tr(8, 30, 10, 0)))
	assert.False(t, Contains(outer, tr(12, 30, 13, 30)))
	assert.False(t, Contains(outer, tr(8, 0, 14, 0)))
}
