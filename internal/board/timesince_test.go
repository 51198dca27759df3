package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeSince(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		age  time.Duration
		want string
	}{
		{0, "just now"},
		{59 * time.Second, "just now"},
		{time.Minute, "1 minutes ago"},
		{59 * time.Minute, "59 minutes ago"},
		{time.Hour, "1 hours ago"},
		{23*time.Hour + 59*time.Minute, "23 hours ago"},
		{24 * time.Hour, "1 days ago"},
		{10*24*time.Hour + 5*time.Hour, "10 days ago"},
		{-time.Minute, "just now"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, TimeSince(now.Add(-c.age), now), c.age.String())
	}
}
