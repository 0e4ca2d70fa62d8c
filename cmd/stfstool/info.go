package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/InvoxiPlayGames/stfstool/internal/utils"
	"github.com/spf13/cobra"
)

// Friendly names for the common content-type codes.
var contentTypeNames = map[uint32]string{
	0x00000001: "Saved Game",
	0x00000002: "Marketplace Content",
	0x00000003: "Publisher Content",
	0x00001000: "Xbox 360 Title",
	0x00004000: "Installed Game",
	0x00005000: "Original Xbox Game",
	0x00009000: "Avatar Item",
	0x00010000: "Profile",
	0x00020000: "Gamer Picture",
	0x00030000: "Theme",
	0x00040000: "Cache File",
	0x00080000: "Game Demo",
	0x00090000: "Video",
	0x000A0000: "Game Title",
	0x000B0000: "Installer",
	0x000D0000: "Arcade Title",
	0x000E0000: "XNA Community Game",
	0x00400000: "Title Update",
}

var thumbnailDir string

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show package metadata",
	Long: `Info prints the metadata header of an STFS package: type tag, content
type, title and media identifiers, content ID and the embedded display
strings. With --thumbnails the embedded thumbnail images are written out
alongside.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := openPackage(args[0])
		if err != nil {
			return err
		}

		contentType := pkg.ContentType()
		contentName := contentTypeNames[contentType]
		if contentName == "" {
			contentName = "Unknown"
		}

		fmt.Printf("Package:      %s\n", args[0])
		fmt.Printf("Type:         %s\n", pkg.Type())
		fmt.Printf("Content type: %s (0x%08X)\n", contentName, contentType)
		fmt.Printf("Title ID:     %08X\n", pkg.TitleID())
		fmt.Printf("Media ID:     %08X\n", pkg.MediaID())
		fmt.Printf("Content ID:   %s\n", pkg.ContentID())
		fmt.Printf("Size:         %s\n", utils.Bytes(pkg.Size()))
		if name := pkg.DisplayName(); name != "" {
			fmt.Printf("Name:         %s\n", name)
		}
		if desc := pkg.Description(); desc != "" {
			fmt.Printf("Description:  %s\n", desc)
		}
		if publisher := pkg.Publisher(); publisher != "" {
			fmt.Printf("Publisher:    %s\n", publisher)
		}
		if title := pkg.TitleName(); title != "" {
			fmt.Printf("Title:        %s\n", title)
		}

		if thumbnailDir == "" {
			return nil
		}

		if err := os.MkdirAll(thumbnailDir, 0755); err != nil {
			return fmt.Errorf("creating thumbnail directory: %w", err)
		}
		thumbnails := []struct {
			name string
			read func() ([]byte, error)
		}{
			{"thumbnail.png", pkg.Thumbnail},
			{"title_thumbnail.png", pkg.TitleThumbnail},
		}
		for _, thumb := range thumbnails {
			data, err := thumb.read()
			if err != nil {
				return fmt.Errorf("reading %s: %w", thumb.name, err)
			}
			if len(data) == 0 {
				continue
			}
			dest := filepath.Join(thumbnailDir, thumb.name)
			if err := os.WriteFile(dest, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", dest, err)
			}
			fmt.Printf("Wrote %s (%s)\n", dest, utils.Bytes(int64(len(data))))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&thumbnailDir, "thumbnails", "", "directory to write thumbnail images to")
}
