package service

import (
	"errors"
	"fmt"
	"strings"

	"tasky/internal/clock"
	"tasky/internal/importer"
	"tasky/internal/logs"
	"tasky/internal/sheet"
	"tasky/internal/store"
	"tasky/internal/view"
)

// SheetInfo is the listing entry for pickers.
type SheetInfo struct {
	ID    string
	Title string
}

// SheetService is the command surface exposed to hosts (CLI, TUI). Every
// mutating call persists the sheet and returns a fresh snapshot; only
// Open performs rollover.
type SheetService interface {
	List() ([]SheetInfo, error)
	Open(id string) (view.Snapshot, error)
	Create(id, title, description string) (view.Snapshot, error)
	Toggle(id, day, itemID string) (view.Snapshot, error)
	EditText(id, day, itemID, text string) (view.Snapshot, error)
	AddItem(id, day, text string) (view.Snapshot, error)
	RemoveItem(id, day, itemID string) (view.Snapshot, error)
	Import(id, path string) (view.Snapshot, error)
	Delete(id string) error
}

type sheetServiceImpl struct {
	store store.Store
	clk   clock.Clock
	opts  sheet.RolloverOptions
}

// NewSheetService wires the engines to a store and a clock.
func NewSheetService(st store.Store, clk clock.Clock, opts sheet.RolloverOptions) SheetService {
	return &sheetServiceImpl{store: st, clk: clk, opts: opts}
}

func (s *sheetServiceImpl) List() ([]SheetInfo, error) {
	ids, err := s.store.List()
	if err != nil {
		return nil, err
	}
	var infos []SheetInfo
	for _, id := range ids {
		sh, err := s.store.Load(id)
		if err != nil {
			// A broken record shouldn't hide the rest of the list.
			logs.Logger.Printf("skipping sheet %s: %v", id, err)
			continue
		}
		infos = append(infos, SheetInfo{ID: sh.ID, Title: sh.Title})
	}
	return infos, nil
}

func (s *sheetServiceImpl) Open(id string) (view.Snapshot, error) {
	sh, err := s.store.Load(id)
	if err != nil {
		return view.Snapshot{}, err
	}

	today := s.clk.Today()
	sheet.Rollover(sh, today, s.clk.Now(), s.opts)
	if err := s.store.Save(sh); err != nil {
		return view.Snapshot{}, err
	}
	return view.Project(sh, today), nil
}

func (s *sheetServiceImpl) Create(id, title, description string) (view.Snapshot, error) {
	sh, err := sheet.New(id, title, description)
	if err != nil {
		return view.Snapshot{}, err
	}

	switch _, err := s.store.Load(sh.ID); {
	case err == nil:
		return view.Snapshot{}, fmt.Errorf("%w: sheet %s", sheet.ErrAlreadyExists, sh.ID)
	case !errors.Is(err, sheet.ErrNotFound):
		return view.Snapshot{}, err
	}

	today := s.clk.Today()
	sh.EnsureDay(today)
	if s.opts.SeedText != "" {
		sh.AddItem(today, s.opts.SeedText, s.clk.Now())
	}
	if err := s.store.Save(sh); err != nil {
		return view.Snapshot{}, err
	}
	logs.Logger.Printf("created sheet %s", sh.ID)
	return view.Project(sh, today), nil
}

func (s *sheetServiceImpl) Toggle(id, day, itemID string) (view.Snapshot, error) {
	return s.mutate(id, func(sh *sheet.Sheet) error {
		return sh.Toggle(day, itemID, s.clk.Now())
	})
}

func (s *sheetServiceImpl) EditText(id, day, itemID, text string) (view.Snapshot, error) {
	return s.mutate(id, func(sh *sheet.Sheet) error {
		return sh.EditText(day, itemID, text)
	})
}

func (s *sheetServiceImpl) AddItem(id, day, text string) (view.Snapshot, error) {
	return s.mutate(id, func(sh *sheet.Sheet) error {
		_, err := sh.AddItem(day, text, s.clk.Now())
		return err
	})
}

func (s *sheetServiceImpl) RemoveItem(id, day, itemID string) (view.Snapshot, error) {
	return s.mutate(id, func(sh *sheet.Sheet) error {
		sh.RemoveItem(day, itemID)
		return nil
	})
}

func (s *sheetServiceImpl) Import(id, path string) (view.Snapshot, error) {
	imp, err := importer.ParseFile(path)
	if err != nil {
		return view.Snapshot{}, err
	}

	title := imp.Title
	if title == "" {
		title = id
	}

	snap, err := s.Create(id, title, imp.Description)
	if err != nil {
		return snap, err
	}

	sh, err := s.store.Load(id)
	if err != nil {
		return view.Snapshot{}, err
	}
	today := s.clk.Today()
	now := s.clk.Now()
	entry := sh.EnsureDay(today)
	for _, it := range imp.Items {
		item := sheet.NewItem(it.Text, now)
		if it.Completed {
			item.Completed = true
			closed := now
			item.ClosedAt = &closed
		}
		entry.Items = append(entry.Items, item)
	}
	if err := s.store.Save(sh); err != nil {
		return view.Snapshot{}, err
	}
	logs.Logger.Printf("imported %d items into sheet %s", len(imp.Items), id)
	return view.Project(sh, today), nil
}

func (s *sheetServiceImpl) Delete(id string) error {
	return s.store.Delete(id)
}

func (s *sheetServiceImpl) mutate(id string, op func(*sheet.Sheet) error) (view.Snapshot, error) {
	sh, err := s.store.Load(id)
	if err != nil {
		return view.Snapshot{}, err
	}
	if err := op(sh); err != nil {
		return view.Snapshot{}, err
	}
	if err := s.store.Save(sh); err != nil {
		return view.Snapshot{}, err
	}
	return view.Project(sh, s.clk.Today()), nil
}

// Slugify turns a human title into a filename-safe sheet id.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
