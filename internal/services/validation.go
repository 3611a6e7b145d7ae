package services

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	urlRegexp = regexp.MustCompile(
		`^((http|https)://)?(www.)?[a-zA-Z0-9@:%._\\+~#?&/=]{2,256}\.[a-z]{2,6}([-a-zA-Z0-9@:%._\\+~#?&//=]*)$`,
	)
	targetRegexp = regexp.MustCompile(`^((http|https)://)?(www\.)?(.*)$`)
	codeRegexp   = regexp.MustCompile(`^[a-zA-Z0-9]{7}$`)
)

// expiresAtLayouts форматы, в которых принимается срок действия ссылки.
var expiresAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidURL проверяет, похожа ли строка на адрес. Схема и www. необязательны.
func ValidURL(raw string) bool {
	return urlRegexp.MatchString(raw)
}

// ExtractTargetURL возвращает канонический адрес без схемы и ведущего www.
func ExtractTargetURL(raw string) string {
	m := targetRegexp.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	return m[4]
}

// ValidCode проверяет формат короткого кода.
func ValidCode(code string) bool {
	return codeRegexp.MatchString(code)
}

// parseMaxClicks принимает положительное число. JSON числа приходят как float64.
func parseMaxClicks(v any) (int, error) {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case int:
		n = float64(val)
	case int64:
		n = float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("maxClicks %q is not a number", val.String())
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("maxClicks %q is not a number", val)
		}
		n = f
	default:
		return 0, fmt.Errorf("maxClicks has unsupported type %T", v)
	}

	if !(n > 0) || n > math.MaxInt32 {
		return 0, fmt.Errorf("maxClicks must be a positive number, got %v", n)
	}
	// кликов целое число, поэтому clicks >= 2.5 равносильно clicks >= 3
	return int(math.Ceil(n)), nil
}

// parseExpiresAt принимает дату строкой либо число миллисекунд с начала эпохи.
func parseExpiresAt(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val.UTC(), nil
	case float64:
		return time.UnixMilli(int64(val)).UTC(), nil
	case json.Number:
		ms, err := val.Int64()
		if err != nil {
			return time.Time{}, fmt.Errorf("expiresAt %q is not a timestamp", val.String())
		}
		return time.UnixMilli(ms).UTC(), nil
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range expiresAtLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), nil
		}
		return time.Time{}, fmt.Errorf("expiresAt %q is not a valid date", val)
	default:
		return time.Time{}, fmt.Errorf("expiresAt has unsupported type %T", v)
	}
}

func parseExpired(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expired must be a boolean, got %T", v)
	}
	return b, nil
}
