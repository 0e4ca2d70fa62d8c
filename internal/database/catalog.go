package database

import (
	"context"
	"fmt"
)

// PackageRow is the catalog's row for one indexed package.
type PackageRow struct {
	Path        string
	Type        string
	ContentType uint32
	TitleID     uint32
	MediaID     uint32
	ContentID   string
	DisplayName string
	TitleName   string
	Publisher   string
	Size        int64
}

// EntryRow is the catalog's row for one file table entry.
type EntryRow struct {
	PackageID  int64
	EntryIndex int
	Path       string
	Name       string
	Directory  bool
	Size       uint32
	StartBlock uint32
	BlockCount uint32
	Parent     int
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS packages (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	path         TEXT NOT NULL,
	type         TEXT NOT NULL,
	content_type INTEGER NOT NULL,
	title_id     INTEGER NOT NULL,
	media_id     INTEGER NOT NULL,
	content_id   TEXT NOT NULL,
	display_name TEXT,
	title_name   TEXT,
	publisher    TEXT,
	size         INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	package_id  INTEGER NOT NULL REFERENCES packages(id),
	entry_index INTEGER NOT NULL,
	path        TEXT NOT NULL,
	name        TEXT NOT NULL,
	directory   INTEGER NOT NULL,
	size        INTEGER NOT NULL,
	start_block INTEGER NOT NULL,
	block_count INTEGER NOT NULL,
	parent      INTEGER NOT NULL,
	PRIMARY KEY (package_id, entry_index)
);

CREATE INDEX IF NOT EXISTS idx_entries_path ON entries(path);
`

// CreateCatalogSchema creates the catalog tables if they do not exist yet.
func (d *Database) CreateCatalogSchema(ctx context.Context) error {
	if _, err := d.Exec(ctx, catalogSchema); err != nil {
		return fmt.Errorf("creating catalog schema: %w", err)
	}
	return nil
}

// InsertPackage inserts a package row and returns its catalog id.
func (d *Database) InsertPackage(ctx context.Context, pkg *PackageRow) (int64, error) {
	result, err := d.Exec(ctx, `
		INSERT INTO packages (path, type, content_type, title_id, media_id, content_id, display_name, title_name, publisher, size)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pkg.Path, pkg.Type, pkg.ContentType, pkg.TitleID, pkg.MediaID,
		pkg.ContentID, pkg.DisplayName, pkg.TitleName, pkg.Publisher, pkg.Size)
	if err != nil {
		return 0, fmt.Errorf("inserting package %s: %w", pkg.Path, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading package id: %w", err)
	}
	return id, nil
}

// InsertEntries inserts all file table rows for one package in a single
// transaction.
func (d *Database) InsertEntries(ctx context.Context, rows []EntryRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (package_id, entry_index, path, name, directory, size, start_block, block_count, parent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.PackageID, row.EntryIndex, row.Path, row.Name, row.Directory,
			row.Size, row.StartBlock, row.BlockCount, row.Parent); err != nil {
			return fmt.Errorf("inserting entry %s: %w", row.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entry inserts: %w", err)
	}
	return nil
}
