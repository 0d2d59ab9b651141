package showtime

import "testing"

func TestDisplayDate(t *testing.T) {
	tests := []struct {
		canonical string
		want      string
	}{
		{"2025-05-30 14:00", "Fri, May 30"},
		{"2025-06-01 17:00", "Sun, Jun 1"},
		{"2026-01-01 10:00", "Thu, Jan 1"},
		{"", UnknownDate},
		{"yesterday", UnknownDate},
		{"2025-05-30", UnknownDate},
	}

	for _, tt := range tests {
		if got := DisplayDate(tt.canonical); got != tt.want {
			t.Errorf("DisplayDate(%q) = %q, want %q", tt.canonical, got, tt.want)
		}
	}
}

func TestDisplayTime(t *testing.T) {
	tests := []struct {
		canonical string
		want      string
	}{
		{"2025-05-30 14:00", "2:00pm"},
		{"2025-05-30 00:05", "12:05am"},
		{"2025-05-30 12:00", "12:00pm"},
		{"2025-05-30 09:20", "9:20am"},
		{"", UnknownTime},
		{"later", UnknownTime},
	}

	for _, tt := range tests {
		if got := DisplayTime(tt.canonical); got != tt.want {
			t.Errorf("DisplayTime(%q) = %q, want %q", tt.canonical, got, tt.want)
		}
	}
}
