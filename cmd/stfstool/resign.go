package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/InvoxiPlayGames/stfstool/internal/stfs"
	"github.com/spf13/cobra"
)

var (
	resignType string
	resignOut  string
)

var resignCmd = &cobra.Command{
	Use:   "resign <package>",
	Short: "Rewrite a package's type tag and zero its signature",
	Long: `Resign overwrites the package's type tag and zeroes the signature region.

No new signature is generated; the result is only accepted by targets that
skip signature checks. The package is rewritten in place unless --out names a
different destination.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tag uint32
		switch resignType {
		case "CON":
			tag = stfs.MagicCON
		case "LIVE":
			tag = stfs.MagicLIVE
		case "PIRS":
			tag = stfs.MagicPIRS
		default:
			return fmt.Errorf("unknown package type %q, expected CON, LIVE or PIRS", resignType)
		}

		pkg, err := openPackage(args[0])
		if err != nil {
			return err
		}

		if err := pkg.Resign(tag); err != nil {
			return fmt.Errorf("resigning package: %w", err)
		}

		dest := resignOut
		if dest == "" {
			dest = args[0]
		}
		if err := os.WriteFile(dest, pkg.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing package: %w", err)
		}

		slog.Info("Package resigned", "package", dest, "type", resignType)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resignCmd)
	resignCmd.Flags().StringVar(&resignType, "type", "LIVE", "type tag to write (CON, LIVE, PIRS)")
	resignCmd.Flags().StringVar(&resignOut, "out-file", "", "write the resigned package to this path instead of in place")
}
