package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"kalma/models"
)

// eventFileMode is used when the events file does not exist yet
const eventFileMode fs.FileMode = 0o644

// EventFile keeps the events document in a single JSON file.
// Every call reads the file fresh. Writers in this process are serialized
// and the file is replaced atomically, so a crash never leaves half a document.
type EventFile struct {
	path string
	mu   sync.Mutex
}

func NewEventFile(path string) *EventFile {
	return &EventFile{path: path}
}

// List returns the whole document. A missing or malformed file reads as empty.
func (f *EventFile) List(ctx context.Context) (models.EventsDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.load()
}

// Add appends an event to date's sequence, creating it when absent.
// Date and title are trimmed; the description is stored as submitted.
func (f *EventFile) Add(ctx context.Context, date, title, description string) error {
	date = strings.TrimSpace(date)
	title = strings.TrimSpace(title)
	if date == "" || title == "" {
		return invalid("Event date and title are required.")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	doc[date] = append(doc[date], models.Event{
		Title:       title,
		Description: description,
	})
	return f.save(doc)
}

// Delete removes the event at index on date and drops the date once its
// sequence is empty. Out of range input is a no-op reported as removed == false.
func (f *EventFile) Delete(ctx context.Context, date string, index int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return false, err
	}
	events, ok := doc[date]
	if !ok || index < 0 || index >= len(events) {
		return false, nil
	}

	events = append(events[:index:index], events[index+1:]...)
	if len(events) == 0 {
		delete(doc, date)
	} else {
		doc[date] = events
	}
	return true, f.save(doc)
}

func (f *EventFile) load() (models.EventsDocument, error) {
	doc := models.EventsDocument{}
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return models.EventsDocument{}, nil
	}
	return doc, nil
}

func (f *EventFile) save(doc models.EventsDocument) error {
	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".events-*.json")
	if err != nil {
		return fmt.Errorf("create temp events file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	// CreateTemp makes the file 0600; keep the existing mode instead
	mode := eventFileMode
	if info, statErr := os.Stat(f.path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod events: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write events: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close events: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace events: %w", err)
	}
	return nil
}
