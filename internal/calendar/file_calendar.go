package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/username/rto-planner/pkg/dateutil"
)

// FileCalendar holds extra company holidays read from a local text file
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	holidays HolidaySet
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		holidays: HolidaySet{},
	}
}

// Load loads holiday data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	holidays, err := fc.parse(file)
	if err != nil {
		return err
	}
	fc.holidays = holidays

	fc.logger.Info("Holiday file loaded",
		zap.String("file", fc.filePath),
		zap.Int("holidays", holidays.Len()))

	return nil
}

// parse reads lines of the form
//
//	YYYY-MM-DD Name of the holiday
//
// Blank lines and lines starting with '#' are skipped. Malformed lines are
// logged and ignored.
func (fc *FileCalendar) parse(r io.Reader) (HolidaySet, error) {
	scanner := bufio.NewScanner(r)
	var found []Holiday

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		dateStr, name, _ := strings.Cut(line, " ")
		date, err := time.Parse(dateutil.DateFormat, dateStr)
		if err != nil {
			fc.logger.Warn("Failed to parse date", zap.String("line", line), zap.Error(err))
			continue
		}

		name = strings.TrimSpace(name)
		if name == "" {
			name = "Company Holiday"
		}

		found = append(found, Holiday{Date: date, Name: name})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading holiday file: %w", err)
	}

	return NewHolidaySet(found...), nil
}

// Holidays returns the loaded holidays within [start, end].
func (fc *FileCalendar) Holidays(start, end time.Time) HolidaySet {
	return fc.holidays.Between(start, end)
}
