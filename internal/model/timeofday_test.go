package model

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"10:00", 600, false},
		{"14:30", 870, false},
		{"23:59", 1439, false},
		{"09:05:30", 545, false}, // seconds ignored
		{" 12:15 ", 735, false},
		{"24:00", 0, true},
		{"10:60", 0, true},
		{"-1:00", 0, true},
		{"noon", 0, true},
		{"10", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	cases := []struct {
		in   TimeOfDay
		want string
	}{
		{NewTimeOfDay(9, 5), "09:05"},
		{NewTimeOfDay(14, 30), "14:30"},
		{NewTimeOfDay(0, 0), "00:00"},
		{NewTimeOfDay(22, 0), "22:00"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestTimeOfDayAdd(t *testing.T) {
	start := NewTimeOfDay(14, 30)
	if got := start.Add(35); got != NewTimeOfDay(15, 5) {
		t.Errorf("Add(35) = %v, want 15:05", got)
	}
}

func TestIntervalString(t *testing.T) {
	iv := Interval{Start: NewTimeOfDay(14, 0), End: NewTimeOfDay(14, 30)}
	if got := iv.String(); got != "14:00 - 14:30" {
		t.Errorf("Interval.String() = %q, want %q", got, "14:00 - 14:30")
	}
}
