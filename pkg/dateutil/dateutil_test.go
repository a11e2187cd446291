package dateutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestStartOfDay_NormalizesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	input := time.Date(2025, 3, 9, 23, 0, 0, 0, loc)

	result := StartOfDay(input)

	if result.Location() != time.UTC {
		t.Errorf("StartOfDay location = %v, want UTC", result.Location())
	}
	if result.Day() != 9 {
		t.Errorf("StartOfDay kept calendar day %d, want 9", result.Day())
	}
}

func TestMonthBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		input     time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "January",
			input:     NewDate(2025, time.January, 15),
			wantStart: NewDate(2025, time.January, 1),
			wantEnd:   NewDate(2025, time.January, 31),
		},
		{
			name:      "February leap year",
			input:     NewDate(2024, time.February, 10),
			wantStart: NewDate(2024, time.February, 1),
			wantEnd:   NewDate(2024, time.February, 29),
		},
		{
			name:      "December rolls into next year",
			input:     NewDate(2025, time.December, 31),
			wantStart: NewDate(2025, time.December, 1),
			wantEnd:   NewDate(2025, time.December, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfMonth(tt.input); !got.Equal(tt.wantStart) {
				t.Errorf("StartOfMonth(%v) = %v, want %v", tt.input, got, tt.wantStart)
			}
			if got := EndOfMonth(tt.input); !got.Equal(tt.wantEnd) {
				t.Errorf("EndOfMonth(%v) = %v, want %v", tt.input, got, tt.wantEnd)
			}
		})
	}
}

func TestNthWeekday(t *testing.T) {
	tests := []struct {
		name string
		year int
		want time.Time
	}{
		{"Thanksgiving 2024", 2024, NewDate(2024, time.November, 28)},
		{"Thanksgiving 2025", 2025, NewDate(2025, time.November, 27)},
		{"Thanksgiving 2026", 2026, NewDate(2026, time.November, 26)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NthWeekday(tt.year, time.November, time.Thursday, 4)
			if !got.Equal(tt.want) {
				t.Errorf("NthWeekday(%d, Nov, Thu, 4) = %v, want %v",
					tt.year, got.Format(DateFormat), tt.want.Format(DateFormat))
			}
		})
	}
}

func TestIsWeekday(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"Monday is weekday", time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), true},
		{"Tuesday is weekday", time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), true},
		{"Wednesday is weekday", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"Thursday is weekday", time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), true},
		{"Friday is weekday", time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC), true},
		{"Saturday is not weekday", time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), false},
		{"Sunday is not weekday", time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsWeekday(tt.input)

			if result != tt.want {
				t.Errorf("IsWeekday(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"), result, tt.want)
			}
			if IsWeekend(tt.input) == tt.want {
				t.Errorf("IsWeekend(%v) disagrees with IsWeekday",
					tt.input.Format("2006-01-02 Mon"))
			}
		})
	}
}

func TestIsSameDay(t *testing.T) {
	tests := []struct {
		name  string
		date1 time.Time
		date2 time.Time
		want  bool
	}{
		{
			"Same date different time",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC),
			true,
		},
		{
			"Different date",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsSameDay(tt.date1, tt.date2)

			if result != tt.want {
				t.Errorf("IsSameDay(%v, %v) = %v, want %v",
					tt.date1, tt.date2, result, tt.want)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	start := NewDate(2025, time.March, 1)
	end := NewDate(2025, time.March, 31)

	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"start bound is inclusive", start, true},
		{"end bound is inclusive", end.Add(15 * time.Hour), true},
		{"day before start", NewDate(2025, time.February, 28), false},
		{"day after end", NewDate(2025, time.April, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InRange(tt.input, start, end); got != tt.want {
				t.Errorf("InRange(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	start := NewDate(2024, time.February, 27)
	end := NewDate(2024, time.March, 2)

	var got []string
	for d := range Days(start, end) {
		got = append(got, d.Format(DateFormat))
	}

	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(got) != len(want) {
		t.Fatalf("Days() yielded %d days, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Days()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	count := 0
	for range Days(end, start) {
		count++
	}
	if count != 0 {
		t.Errorf("Days() over reversed range yielded %d days, want 0", count)
	}
}

func TestMonthKeyAndLabel(t *testing.T) {
	date := NewDate(2025, time.September, 30)

	if got := MonthKey(date); got != "2025-09" {
		t.Errorf("MonthKey(%v) = %q, want %q", date, got, "2025-09")
	}
	if got := MonthLabel("2025-09"); got != "Sep 2025" {
		t.Errorf("MonthLabel(2025-09) = %q, want %q", got, "Sep 2025")
	}
	if got := MonthLabel("garbage"); got != "garbage" {
		t.Errorf("MonthLabel(garbage) = %q, want input unchanged", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			"ISO format YYYY-MM-DD",
			"2025-01-15",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"Single digit month and day",
			"2025-7-4",
			time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"US format MM/DD/YYYY",
			"12/24/2025",
			time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"ISO with time is truncated to the day",
			"2025-01-15T10:30:00",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"Invalid input",
			"next tuesday",
			time.Time{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}
