package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/busebalkan99/design-checklist-vercel/internal/core"
)

// FileSink writes events to a file as JSON lines.
type FileSink struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

func NewFileSink(filePath string) (*FileSink, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening audit log file: %w", err)
	}
	return &FileSink{
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

func (f *FileSink) Emit(event core.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.encoder.Encode(event); err != nil {
		// write errors only reach the process log
		log.Error().Err(err).Str("action", event.Action).Msg("failed to write audit event")
	}
}

func (f *FileSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Close()
}
