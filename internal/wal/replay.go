package wal

import (
	"bufio"
	"encoding/json"
	"github.com/rs/zerolog/log"
	"os"
)

// Replay reads the WAL from the start and hands every entry to fn in order. Malformed lines
// are logged and skipped.
func (m *Manager) Replay(fn func(e *Entry) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, err := os.Open(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			log.Warn().Err(err).Msg("Skipping malformed WAL entry")
			continue
		}
		if err := fn(&entry); err != nil {
			return err
		}
	}

	return scanner.Err()
}
