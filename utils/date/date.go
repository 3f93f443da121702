package date

import (
	"database/sql/driver"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alpacahq/gopaca/clock"
)

// Date is a calendar date (no time component) that scans to and
// from a Postgres date column.
type Date struct {
	civil.Date
}

func DateOf(t time.Time) Date {
	var d Date
	d.Date.Year, d.Date.Month, d.Date.Day = t.Date()
	return d
}

// Today is the current calendar date per the system clock.
func Today() Date {
	return DateOf(clock.Now())
}

func Parse(layout string, value string) (Date, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func ParseDate(s string) (Date, error) {
	if d, err := civil.ParseDate(s); err != nil {
		return Date{}, err
	} else {
		return Date{Date: d}, nil
	}
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Date{Date: d.Date.AddDays(n)}
}

func (d Date) Value() (driver.Value, error) {
	return d.Date.String(), nil
}

func (d *Date) Scan(value interface{}) error {
	if value == nil {
		d = nil
		return nil
	}

	t := value.(time.Time)
	if t.IsZero() {
		d = nil
		return nil
	}

	d.Date = civil.DateOf(t)
	return nil
}
