package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := New(&Options{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.CreateCatalogSchema(context.Background()))
	return db
}

func TestCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	id, err := db.InsertPackage(ctx, &PackageRow{
		Path:        "save.con",
		Type:        "CON ",
		ContentType: 0x1,
		TitleID:     0x415608FB,
		ContentID:   "00AA",
		DisplayName: "Test Save",
		Size:        0x971A,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	err = db.InsertEntries(ctx, []EntryRow{
		{PackageID: id, EntryIndex: 0, Path: "saves", Name: "saves", Directory: true, Parent: -1},
		{PackageID: id, EntryIndex: 1, Path: "saves/game.sav", Name: "game.sav", Size: 1234, StartBlock: 2, BlockCount: 1, Parent: 0},
	})
	require.NoError(t, err)

	var count int
	row := db.QueryRow(ctx, `SELECT COUNT(*) FROM entries WHERE package_id = ?`, id)
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 2, count)

	var size int
	row = db.QueryRow(ctx, `SELECT size FROM entries WHERE path = ?`, "saves/game.sav")
	require.NoError(t, row.Scan(&size))
	assert.Equal(t, 1234, size)
}

func TestInsertEntriesEmpty(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.InsertEntries(context.Background(), nil))
}
