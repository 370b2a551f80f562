package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasky/internal/sheet"
)

// FileStore keeps one <id>.json per sheet under a notes directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the notes directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create notes dir: %v", sheet.ErrIO, err)
	}
	return &FileStore{dir: dir}, nil
}

type sheetRecord struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Days        []dayRecord `json:"days"`
}

type dayRecord struct {
	Day   string       `json:"day"`
	Items []itemRecord `json:"items"`
}

type itemRecord struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	AddedAt   time.Time  `json:"added_at"`
	ClosedAt  *time.Time `json:"closed_at"`
}

func (fs *FileStore) path(id string) string {
	return filepath.Join(fs.dir, id+".json")
}

func (fs *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read notes dir: %v", sheet.ErrIO, err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (fs *FileStore) Load(id string) (*sheet.Sheet, error) {
	data, err := os.ReadFile(fs.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: sheet %s", sheet.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: read sheet %s: %v", sheet.ErrIO, id, err)
	}

	var rec sheetRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %v", sheet.ErrCorrupt, id, err)
	}
	return fromRecord(id, rec)
}

func (fs *FileStore) Save(s *sheet.Sheet) error {
	data, err := json.MarshalIndent(toRecord(s), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode sheet %s: %v", sheet.ErrIO, s.ID, err)
	}
	if err := os.WriteFile(fs.path(s.ID), data, 0644); err != nil {
		return fmt.Errorf("%w: write sheet %s: %v", sheet.ErrIO, s.ID, err)
	}
	return nil
}

func (fs *FileStore) Delete(id string) error {
	if err := os.Remove(fs.path(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: sheet %s", sheet.ErrNotFound, id)
		}
		return fmt.Errorf("%w: delete sheet %s: %v", sheet.ErrIO, id, err)
	}
	return nil
}

func (fs *FileStore) Close() error { return nil }

func toRecord(s *sheet.Sheet) sheetRecord {
	rec := sheetRecord{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Days:        []dayRecord{},
	}
	for _, d := range s.Days {
		dr := dayRecord{Day: d.Day, Items: []itemRecord{}}
		for _, it := range d.Items {
			dr.Items = append(dr.Items, itemRecord{
				ID:        it.ID,
				Text:      it.Text,
				Completed: it.Completed,
				AddedAt:   it.AddedAt,
				ClosedAt:  it.ClosedAt,
			})
		}
		rec.Days = append(rec.Days, dr)
	}
	return rec
}

// fromRecord validates the decoded record against the data model: day
// keys must parse, appear at most once, and completed state must agree
// with closed_at.
func fromRecord(id string, rec sheetRecord) (*sheet.Sheet, error) {
	if strings.TrimSpace(rec.Title) == "" {
		return nil, fmt.Errorf("%w: sheet %s: missing title", sheet.ErrCorrupt, id)
	}
	s := &sheet.Sheet{
		ID:          id,
		Title:       rec.Title,
		Description: rec.Description,
	}
	seen := make(map[string]bool)
	for _, dr := range rec.Days {
		if !sheet.ValidDay(dr.Day) {
			return nil, fmt.Errorf("%w: sheet %s: bad day key %q", sheet.ErrCorrupt, id, dr.Day)
		}
		if seen[dr.Day] {
			return nil, fmt.Errorf("%w: sheet %s: duplicate day %s", sheet.ErrCorrupt, id, dr.Day)
		}
		seen[dr.Day] = true

		entry := sheet.DayEntry{Day: dr.Day}
		for _, ir := range dr.Items {
			if ir.Completed != (ir.ClosedAt != nil) {
				return nil, fmt.Errorf("%w: sheet %s: item %q completed/closed_at mismatch", sheet.ErrCorrupt, id, ir.Text)
			}
			// Older records predate item ids; assign one on load.
			if ir.ID == "" {
				ir.ID = uuid.NewString()
			}
			entry.Items = append(entry.Items, sheet.ChecklistItem{
				ID:        ir.ID,
				Text:      ir.Text,
				Completed: ir.Completed,
				AddedAt:   ir.AddedAt,
				ClosedAt:  ir.ClosedAt,
			})
		}
		s.Days = append(s.Days, entry)
	}
	return s, nil
}
