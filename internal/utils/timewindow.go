package utils

import (
	"errors"
	"fmt"
	"time"
)

// TimeLayout 账户可用时间格式 YYYY-MM-DD HH:MM:SS，按本地时间解析
const TimeLayout = "2006-01-02 15:04:05"

var ErrInvalidTimeFormat = errors.New("time must use the YYYY-MM-DD HH:MM:SS format")

// ParseTimestamp parses value as a naive local timestamp. value must be exactly in
// TimeLayout: no surrounding spaces, no fractional seconds.
func ParseTimestamp(value string) (time.Time, error) {
	// UTC 下校验规范形式，避免本地夏令时空档改写时刻
	canonical, err := time.Parse(TimeLayout, value)
	if err != nil || canonical.Format(TimeLayout) != value {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	parsed, err := time.ParseInLocation(TimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	return parsed, nil
}

// VerifyTime 返回 (end 晚于 start, now 严格位于 start 与 end 之间)
func VerifyTime(start, end string, now time.Time) (bool, bool, error) {
	startAt, err := ParseTimestamp(start)
	if err != nil {
		return false, false, err
	}
	endAt, err := ParseTimestamp(end)
	if err != nil {
		return false, false, err
	}
	ordered := endAt.After(startAt)
	active := now.After(startAt) && now.Before(endAt)
	return ordered, active, nil
}

// FormatTimestamp renders t in the stored layout.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(TimeLayout)
}
