package logging

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// isURLKey reports whether a field carries a registry index URL, which may
// embed credentials.
func isURLKey(key string) bool {
	key = key[strings.LastIndexByte(key, '.')+1:]
	return key == "url" || strings.HasSuffix(key, "_url")
}

// redact masks the userinfo of index URLs so tokens never reach the logs.
// Other values pass through untouched.
func redact(key string, v slog.Value) slog.Value {
	if v.Kind() != slog.KindString || !isURLKey(key) {
		return v
	}
	u, err := url.Parse(v.String())
	if err != nil || u.User == nil {
		return v
	}
	if _, ok := u.User.Password(); ok {
		return slog.StringValue(u.Redacted())
	}
	u.User = url.User("xxxxx")
	return slog.StringValue(u.String())
}

// consoleValue renders a value for the key=value console format, quoting
// text that would otherwise be ambiguous.
func consoleValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}
