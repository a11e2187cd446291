package calendar

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewHolidaySet_FirstEntryWins(t *testing.T) {
	set := NewHolidaySet(
		Holiday{Date: d(2025, time.May, 26), Name: "Memorial Day"},
		Holiday{Date: time.Date(2025, 5, 26, 15, 0, 0, 0, time.UTC), Name: "Duplicate"},
		Holiday{Date: d(2025, time.January, 1), Name: "New Year's Day"},
	)

	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
	if set[0].Name != "New Year's Day" {
		t.Errorf("set[0] = %q, want sorted by date", set[0].Name)
	}
	if set[1].Name != "Memorial Day" {
		t.Errorf("set[1] = %q, want first entry to win", set[1].Name)
	}
}

func TestHolidaySet_Lookup(t *testing.T) {
	set := NewHolidaySet(
		Holiday{Date: d(2025, time.January, 1), Name: "A"},
		Holiday{Date: d(2025, time.February, 1), Name: "B"},
		Holiday{Date: d(2025, time.March, 1), Name: "C"},
	)

	tests := []struct {
		name     string
		date     time.Time
		wantName string
		wantOK   bool
	}{
		{"first", d(2025, time.January, 1), "A", true},
		{"middle with time of day", time.Date(2025, 2, 1, 18, 30, 0, 0, time.UTC), "B", true},
		{"last", d(2025, time.March, 1), "C", true},
		{"absent", d(2025, time.February, 2), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := set.Lookup(tt.date)
			if ok != tt.wantOK || h.Name != tt.wantName {
				t.Errorf("Lookup(%v) = (%q, %v), want (%q, %v)", tt.date, h.Name, ok, tt.wantName, tt.wantOK)
			}
		})
	}
}

func TestWorkCalendar_GetMonthInfo(t *testing.T) {
	start, end := d(2025, time.November, 1), d(2025, time.November, 30)
	wc := NewWorkCalendar(start, end, BuildHolidays(start, end, false))

	info, err := wc.GetMonthInfo(2025, time.November)
	if err != nil {
		t.Fatalf("GetMonthInfo() error = %v", err)
	}

	if info.Key != "2025-11" {
		t.Errorf("Key = %q, want 2025-11", info.Key)
	}
	if len(info.Days) != 30 {
		t.Errorf("Days count = %d, want 30", len(info.Days))
	}
	// 20 weekdays minus Veterans Day, Thanksgiving and the day after.
	if info.WorkDays != 17 {
		t.Errorf("WorkDays = %d, want 17", info.WorkDays)
	}
	if info.Holidays != 3 {
		t.Errorf("Holidays = %d, want 3", info.Holidays)
	}
	if info.Weekends != 10 {
		t.Errorf("Weekends = %d, want 10", info.Weekends)
	}
}

func TestWorkCalendar_ClipsToRange(t *testing.T) {
	wc := NewWorkCalendar(d(2025, time.January, 15), d(2025, time.February, 10), HolidaySet{})

	info, err := wc.GetMonthInfo(2025, time.January)
	if err != nil {
		t.Fatalf("GetMonthInfo() error = %v", err)
	}
	if len(info.Days) != 17 {
		t.Errorf("Days count = %d, want 17 (Jan 15-31)", len(info.Days))
	}

	if _, err := wc.GetMonthInfo(2025, time.March); err == nil {
		t.Error("GetMonthInfo(March) expected error for month outside range")
	}
	if _, err := wc.GetDayInfo(d(2025, time.January, 1)); err == nil {
		t.Error("GetDayInfo(Jan 1) expected error for day outside range")
	}
}

func TestWorkCalendar_GetDayInfo(t *testing.T) {
	start, end := d(2025, time.December, 1), d(2025, time.December, 31)
	wc := NewWorkCalendar(start, end, BuildHolidays(start, end, true))

	tests := []struct {
		name     string
		date     time.Time
		wantType DayType
		wantNote string
	}{
		{"regular workday", d(2025, time.December, 2), DayTypeWorkday, ""},
		{"weekend", d(2025, time.December, 6), DayTypeWeekend, ""},
		{"federal holiday", d(2025, time.December, 25), DayTypeHoliday, "Christmas Day"},
		{"break day", d(2025, time.December, 29), DayTypeHoliday, ChristmasBreakName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := wc.GetDayInfo(tt.date)
			if err != nil {
				t.Fatalf("GetDayInfo() error = %v", err)
			}
			if info.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", info.Type, tt.wantType)
			}
			if info.Note != tt.wantNote {
				t.Errorf("Note = %q, want %q", info.Note, tt.wantNote)
			}
			if info.IsWorkday != (tt.wantType == DayTypeWorkday) {
				t.Errorf("IsWorkday = %v inconsistent with type %v", info.IsWorkday, info.Type)
			}
			if wc.IsWorkday(tt.date) != info.IsWorkday {
				t.Errorf("IsWorkday(%v) disagrees with GetDayInfo", tt.date)
			}
		})
	}
}

func TestFileCalendar_Parse(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	fc := NewFileCalendar("unused", logger)

	input := `# company holidays
2025-08-15 Summer Friday

not-a-date Broken line
2025-10-31
2025-08-15 Duplicate
`

	set, err := fc.parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	if set.Len() != 2 {
		t.Fatalf("parse() returned %d holidays, want 2: %v", set.Len(), set)
	}
	if set[0].Name != "Summer Friday" {
		t.Errorf("set[0].Name = %q, want %q", set[0].Name, "Summer Friday")
	}
	if set[1].Name != "Company Holiday" {
		t.Errorf("set[1].Name = %q, want default name", set[1].Name)
	}
}

func TestFileCalendar_LoadMissingFile(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	fc := NewFileCalendar(t.TempDir()+"/missing.txt", logger)

	if err := fc.Load(); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
	if fc.Holidays(d(2025, time.January, 1), d(2025, time.December, 31)).Len() != 0 {
		t.Error("Holidays() should be empty after failed load")
	}
}
