package main

import (
	"fmt"

	"github.com/InvoxiPlayGames/stfstool/internal/utils"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <package>",
	Short: "List the files inside a package",
	Long: `List parses the package's file table and prints one line per entry with
its full path, size and starting block.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := openPackage(args[0])
		if err != nil {
			return err
		}

		table, err := pkg.FileTable()
		if err != nil {
			return fmt.Errorf("parsing file table: %w", err)
		}

		var total int64
		fmt.Printf("%-12s %10s %8s  %s\n", "Start", "Size", "Blocks", "Path")
		for i, entry := range table {
			path, err := pkg.Path(i)
			if err != nil {
				return fmt.Errorf("resolving path of entry %d: %w", i, err)
			}
			if entry.IsDirectory {
				fmt.Printf("%-12s %10s %8s  %s/\n", "-", "-", "-", path)
				continue
			}
			total += int64(entry.Size)
			fmt.Printf("0x%-10X %10d %8d  %s\n", uint32(entry.StartBlock), entry.Size, entry.BlockCount, path)
		}

		fmt.Printf("\n%d entries, %s\n", len(table), utils.Bytes(total))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
