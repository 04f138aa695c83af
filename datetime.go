package toml

import (
	"fmt"
	"time"
)

// Datetime represents any of TOML's four date/time forms. Which fields are
// meaningful is determined by HasDate, HasTime, and HasOffset: an
// offset-datetime has all three set, a local-datetime has HasDate and
// HasTime, a local-date has only HasDate, and a local-time has only
// HasTime.
type Datetime struct {
	HasDate    bool
	Year       int
	Month      int
	Day        int
	HasTime    bool
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
	HasOffset  bool
	OffsetSign byte // '+' or '-'; meaningless when OffsetHour == OffsetMinute == 0 (i.e. "Z")
	OffsetHour int
	OffsetMinute int
}

// AsTime converts d to a time.Time. If d has no offset, local is used as
// the zone (pass time.Local for "the host's local time", or any fixed
// zone the caller considers the right default). If d has no time
// component, the time fields are zero; if it has no date component, the
// date fields are zero (TOML local-time values are day-less by design —
// callers that need a calendar day must supply one externally).
func (d Datetime) AsTime(local *time.Location) time.Time {
	zone := local
	if d.HasOffset {
		sign := 1
		if d.OffsetSign == '-' {
			sign = -1
		}
		zone = time.FixedZone("", sign*(d.OffsetHour*3600+d.OffsetMinute*60))
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, d.Nanosecond, zone)
}

// String renders d in the RFC 3339 form matching its populated fields.
func (d Datetime) String() string {
	s := ""
	if d.HasDate {
		s += fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	if d.HasDate && d.HasTime {
		s += "T"
	}
	if d.HasTime {
		s += fmt.Sprintf("%02d:%02d:%02d", d.Hour, d.Minute, d.Second)
		if d.Nanosecond != 0 {
			s += fmt.Sprintf(".%09d", d.Nanosecond)
		}
	}
	if d.HasOffset {
		if d.OffsetHour == 0 && d.OffsetMinute == 0 {
			s += "Z"
		} else {
			s += fmt.Sprintf("%c%02d:%02d", d.OffsetSign, d.OffsetHour, d.OffsetMinute)
		}
	}
	return s
}

var daysInMonth = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// parseDatetime decodes a raw datetime lexeme (as classified by the
// scanner) into a Datetime, per spec.md §4.3.
func parseDatetime(b []byte) (Datetime, error) {
	var d Datetime

	rest := b
	if len(rest) >= 10 && rest[4] == '-' && rest[7] == '-' {
		year, err := parseDecimalDigits(rest[0:4])
		if err != nil {
			return d, err
		}
		month, err := parseDecimalDigits(rest[5:7])
		if err != nil {
			return d, err
		}
		day, err := parseDecimalDigits(rest[8:10])
		if err != nil {
			return d, err
		}
		if err := validateDate(year, month, day, rest[:10]); err != nil {
			return d, err
		}
		d.HasDate = true
		d.Year, d.Month, d.Day = year, month, day
		rest = rest[10:]

		if len(rest) == 0 {
			return d, nil
		}
		switch rest[0] {
		case 'T', 't', ' ':
			rest = rest[1:]
		default:
			return d, newDecodeError(rest[:1], "expected 'T', 't', or a space between date and time")
		}
	}

	if len(rest) < 8 || rest[2] != ':' || rest[5] != ':' {
		return d, newDecodeError(rest, "expected a time in the format HH:MM:SS")
	}

	hour, err := parseDecimalDigits(rest[0:2])
	if err != nil {
		return d, err
	}
	minute, err := parseDecimalDigits(rest[3:5])
	if err != nil {
		return d, err
	}
	second, err := parseDecimalDigits(rest[6:8])
	if err != nil {
		return d, err
	}
	if hour > 23 {
		return d, newDecodeError(rest[0:2], "hour out of range: %d", hour)
	}
	if minute > 59 {
		return d, newDecodeError(rest[3:5], "minute out of range: %d", minute)
	}
	if second > 60 {
		return d, newDecodeError(rest[6:8], "second out of range: %d", second)
	}
	if second == 60 && !(d.HasDate && isLeapSecondEligible(d.Month, d.Day)) {
		return d, newDecodeError(rest[6:8], "second 60 is only allowed on the last day of June or December")
	}
	d.HasTime = true
	d.Hour, d.Minute, d.Second = hour, minute, second
	rest = rest[8:]

	if len(rest) > 0 && rest[0] == '.' {
		rest = rest[1:]
		n := 0
		frac := 0
		for n < len(rest) && isDigit(rest[n]) {
			if n < 9 {
				frac = frac*10 + int(rest[n]-'0')
			}
			n++
		}
		if n == 0 {
			return d, newDecodeError(rest[:1], "expected a digit after the decimal point")
		}
		for i := n; i < 9; i++ {
			frac *= 10
		}
		d.Nanosecond = frac
		rest = rest[n:]
	}

	if len(rest) == 0 {
		return d, nil
	}

	switch rest[0] {
	case 'Z', 'z':
		d.HasOffset = true
		rest = rest[1:]
	case '+', '-':
		if len(rest) != 6 || rest[3] != ':' {
			return d, newDecodeError(rest, "expected an offset in the format +HH:MM")
		}
		offHour, err := parseDecimalDigits(rest[1:3])
		if err != nil {
			return d, err
		}
		offMinute, err := parseDecimalDigits(rest[4:6])
		if err != nil {
			return d, err
		}
		if offHour > 23 {
			return d, newDecodeError(rest[1:3], "offset hour out of range: %d", offHour)
		}
		if offMinute > 59 {
			return d, newDecodeError(rest[4:6], "offset minute out of range: %d", offMinute)
		}
		d.HasOffset = true
		d.OffsetSign = rest[0]
		d.OffsetHour, d.OffsetMinute = offHour, offMinute
		rest = rest[6:]
	default:
		return d, newDecodeError(rest[:1], "expected 'Z' or an offset, got %q", rest[0])
	}

	if len(rest) != 0 {
		return d, newDecodeError(rest, "unexpected trailing bytes in datetime")
	}
	return d, nil
}

func isLeapSecondEligible(month, day int) bool {
	return (month == 6 && day == 30) || (month == 12 && day == 31)
}

func validateDate(year, month, day int, highlight []byte) error {
	if month < 1 || month > 12 {
		return newDecodeError(highlight, "month out of range: %d", month)
	}
	max := daysInMonth[month-1]
	if month == 2 && isLeapYear(year) {
		max = 29
	}
	if day < 1 || day > max {
		return newDecodeError(highlight, "day out of range for %04d-%02d: %d", year, month, day)
	}
	return nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func parseDecimalDigits(b []byte) (int, error) {
	v := 0
	for _, c := range b {
		if !isDigit(c) {
			return 0, newDecodeError(b, "expected a digit, got %q", c)
		}
		v = v*10 + int(c-'0')
	}
	return v, nil
}
