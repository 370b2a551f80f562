package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tasky/internal/sheet"
)

//go:embed schema.sql
var schema string

// SQLiteStore keeps every sheet in a single sqlite database. Save is a
// full rewrite of the sheet's rows inside one transaction, matching the
// last-write-wins model of the file backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// initializes the schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", sheet.ErrIO, err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("%w: init schema: %v", sheet.ErrIO, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) List() ([]string, error) {
	rows, err := s.db.Query("SELECT id FROM sheets ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: list sheets: %v", sheet.ErrIO, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan sheet id: %v", sheet.ErrIO, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) Load(id string) (*sheet.Sheet, error) {
	sh := &sheet.Sheet{ID: id}
	err := s.db.QueryRow(
		"SELECT title, description FROM sheets WHERE id = ?", id,
	).Scan(&sh.Title, &sh.Description)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: sheet %s", sheet.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get sheet %s: %v", sheet.ErrIO, id, err)
	}

	dayRows, err := s.db.Query(
		"SELECT day FROM days WHERE sheet_id = ? ORDER BY position", id,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: get days for %s: %v", sheet.ErrIO, id, err)
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var day string
		if err := dayRows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: scan day: %v", sheet.ErrIO, err)
		}
		if !sheet.ValidDay(day) {
			return nil, fmt.Errorf("%w: sheet %s: bad day key %q", sheet.ErrCorrupt, id, day)
		}
		sh.Days = append(sh.Days, sheet.DayEntry{Day: day})
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate days: %v", sheet.ErrIO, err)
	}

	for i := range sh.Days {
		items, err := s.loadItems(id, sh.Days[i].Day)
		if err != nil {
			return nil, err
		}
		sh.Days[i].Items = items
	}
	return sh, nil
}

func (s *SQLiteStore) loadItems(sheetID, day string) ([]sheet.ChecklistItem, error) {
	rows, err := s.db.Query(
		"SELECT id, text, completed, added_at, closed_at FROM items WHERE sheet_id = ? AND day = ? ORDER BY position",
		sheetID, day,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: get items for %s/%s: %v", sheet.ErrIO, sheetID, day, err)
	}
	defer rows.Close()

	var items []sheet.ChecklistItem
	for rows.Next() {
		var (
			it       sheet.ChecklistItem
			added    string
			closed   sql.NullString
			complete int
		)
		if err := rows.Scan(&it.ID, &it.Text, &complete, &added, &closed); err != nil {
			return nil, fmt.Errorf("%w: scan item: %v", sheet.ErrIO, err)
		}
		it.Completed = complete != 0
		if it.AddedAt, err = time.Parse(time.RFC3339Nano, added); err != nil {
			return nil, fmt.Errorf("%w: sheet %s: bad added_at %q", sheet.ErrCorrupt, sheetID, added)
		}
		if closed.Valid {
			ts, err := time.Parse(time.RFC3339Nano, closed.String)
			if err != nil {
				return nil, fmt.Errorf("%w: sheet %s: bad closed_at %q", sheet.ErrCorrupt, sheetID, closed.String)
			}
			it.ClosedAt = &ts
		}
		if it.Completed != (it.ClosedAt != nil) {
			return nil, fmt.Errorf("%w: sheet %s: item %q completed/closed_at mismatch", sheet.ErrCorrupt, sheetID, it.Text)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Save(sh *sheet.Sheet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin save: %v", sheet.ErrIO, err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM items WHERE sheet_id = ?",
		"DELETE FROM days WHERE sheet_id = ?",
		"DELETE FROM sheets WHERE id = ?",
	} {
		if _, err := tx.Exec(stmt, sh.ID); err != nil {
			return fmt.Errorf("%w: clear sheet %s: %v", sheet.ErrIO, sh.ID, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO sheets (id, title, description) VALUES (?, ?, ?)",
		sh.ID, sh.Title, sh.Description,
	); err != nil {
		return fmt.Errorf("%w: insert sheet %s: %v", sheet.ErrIO, sh.ID, err)
	}

	for di, d := range sh.Days {
		if _, err := tx.Exec(
			"INSERT INTO days (sheet_id, day, position) VALUES (?, ?, ?)",
			sh.ID, d.Day, di,
		); err != nil {
			return fmt.Errorf("%w: insert day %s: %v", sheet.ErrIO, d.Day, err)
		}
		for ii, it := range d.Items {
			var closed interface{}
			if it.ClosedAt != nil {
				closed = it.ClosedAt.Format(time.RFC3339Nano)
			}
			if _, err := tx.Exec(
				"INSERT INTO items (id, sheet_id, day, position, text, completed, added_at, closed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
				it.ID, sh.ID, d.Day, ii, it.Text, boolToInt(it.Completed),
				it.AddedAt.Format(time.RFC3339Nano), closed,
			); err != nil {
				return fmt.Errorf("%w: insert item %q: %v", sheet.ErrIO, it.Text, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit sheet %s: %v", sheet.ErrIO, sh.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM sheets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: delete sheet %s: %v", sheet.ErrIO, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete sheet %s: %v", sheet.ErrIO, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: sheet %s", sheet.ErrNotFound, id)
	}
	for _, stmt := range []string{
		"DELETE FROM items WHERE sheet_id = ?",
		"DELETE FROM days WHERE sheet_id = ?",
	} {
		if _, err := s.db.Exec(stmt, id); err != nil {
			return fmt.Errorf("%w: delete sheet %s rows: %v", sheet.ErrIO, id, err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
