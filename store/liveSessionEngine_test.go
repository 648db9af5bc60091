package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceDuration(t *testing.T) {
	joined := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		leftAt *time.Time
		want   int
	}{
		{"still in session", nil, 0},
		{"left immediately", timePtr(joined), 0},
		{"ninety minutes", timePtr(joined.Add(90 * time.Minute)), 90},
		{"partial minute truncates", timePtr(joined.Add(45*time.Minute + 59*time.Second)), 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attendanceDuration(joined, tt.leftAt))
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
