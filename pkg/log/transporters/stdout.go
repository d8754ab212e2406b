// Package transporters holds the log.Transporter implementations.
package transporters

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"bizcard/pkg/log"
)

// Stdout writes line-delimited JSON to os.Stdout or any io.Writer.
type Stdout struct {
	mu     sync.Mutex
	writer io.Writer
}

func NewStdout() *Stdout {
	return &Stdout{writer: os.Stdout}
}

// NewStdoutWithWriter writes to w instead of os.Stdout.
func NewStdoutWithWriter(w io.Writer) *Stdout {
	return &Stdout{writer: w}
}

func (s *Stdout) Name() string { return "stdout" }

func (s *Stdout) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.writer.Write(data)
	return err
}

func (s *Stdout) Close() error { return nil }

// ForFormat picks the transporter for a configured log format: "text" gives
// a Text transporter, anything else JSON.
func ForFormat(format string, w io.Writer) log.Transporter {
	if format == "text" {
		return NewText(w)
	}
	return NewStdoutWithWriter(w)
}
