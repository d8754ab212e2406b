package transporters

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"bizcard/pkg/log"
)

// Text writes one human-readable line per entry, for local development:
//
//	15:04:05.000 INFO  card created card_id=c-1 request_id=abc
type Text struct {
	mu     sync.Mutex
	writer io.Writer
}

func NewText(w io.Writer) *Text {
	return &Text{writer: w}
}

func (t *Text) Name() string { return "text" }

func (t *Text) Write(entry log.Entry) error {
	var b strings.Builder
	b.WriteString(entry.Timestamp.Format("15:04:05.000"))
	fmt.Fprintf(&b, " %-5s %s", entry.Level, entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, textValue(entry.Fields[k]))
	}
	if entry.RequestID != "" {
		fmt.Fprintf(&b, " request_id=%s", entry.RequestID)
	}
	if entry.UserID != "" {
		fmt.Fprintf(&b, " user_id=%s", entry.UserID)
	}
	if entry.Caller != "" {
		fmt.Fprintf(&b, " caller=%s", entry.Caller)
	}
	b.WriteByte('\n')

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.writer, b.String())
	return err
}

func (t *Text) Close() error { return nil }

func textValue(v any) string {
	var s string
	switch val := v.(type) {
	case error:
		s = val.Error()
	case time.Duration:
		s = val.String()
	default:
		s = fmt.Sprint(val)
	}
	if strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
