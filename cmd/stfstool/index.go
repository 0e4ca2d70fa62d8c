package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/InvoxiPlayGames/stfstool/internal/database"
	"github.com/InvoxiPlayGames/stfstool/internal/stfs"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index <package>",
	Short: "Catalog a package's file table into a SQLite database",
	Long: `Index parses the package's metadata and file table and writes them into a
SQLite database, so listings across many packages can be queried with plain
SQL (see the query command). Indexing the same package again adds a new
package row; the database may hold any number of packages.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		pkg, err := openPackage(args[0])
		if err != nil {
			return err
		}

		table, err := pkg.FileTable()
		if err != nil {
			return fmt.Errorf("parsing file table: %w", err)
		}

		db, err := database.New(database.DefaultOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		if err := db.CreateCatalogSchema(ctx); err != nil {
			return err
		}

		pkgID, err := db.InsertPackage(ctx, &database.PackageRow{
			Path:        args[0],
			Type:        pkg.Type(),
			ContentType: pkg.ContentType(),
			TitleID:     pkg.TitleID(),
			MediaID:     pkg.MediaID(),
			ContentID:   pkg.ContentID(),
			DisplayName: pkg.DisplayName(),
			TitleName:   pkg.TitleName(),
			Publisher:   pkg.Publisher(),
			Size:        pkg.Size(),
		})
		if err != nil {
			return err
		}

		rows := make([]database.EntryRow, len(table))
		for i, entry := range table {
			path, err := pkg.Path(i)
			if err != nil {
				return fmt.Errorf("resolving path of entry %d: %w", i, err)
			}
			parent := int(entry.ParentIndex)
			if entry.ParentIndex == stfs.RootParent {
				parent = -1
			}
			rows[i] = database.EntryRow{
				PackageID:  pkgID,
				EntryIndex: i,
				Path:       path,
				Name:       entry.Name,
				Directory:  entry.IsDirectory,
				Size:       entry.Size,
				StartBlock: uint32(entry.StartBlock),
				BlockCount: entry.BlockCount,
				Parent:     parent,
			}
		}

		if err := db.InsertEntries(ctx, rows); err != nil {
			return err
		}

		slog.Info("Package indexed", "package", args[0], "entries", len(rows), "database", cfg.Database)
		fmt.Printf("Indexed %d entries from %s into %s\n", len(rows), args[0], cfg.Database)
		fmt.Println("Try running: stfstool query --tables")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
