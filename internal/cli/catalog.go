package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/sketchdeck/internal/catalog"
	"github.com/iburimskiy/sketchdeck/internal/config"
	"github.com/iburimskiy/sketchdeck/internal/slideshow"
)

const imageListName = "image-list.json"

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build and inspect the image list",
	}
	catalogCmd.AddCommand(newCatalogBuildCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	return catalogCmd
}

func newCatalogBuildCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string
	var outFlag string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Scan an image directory into the image list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir := strings.TrimSpace(dirFlag)
			if dir == "" {
				dir, err = chooseImageDirectory(cfg)
				if err != nil {
					return err
				}
			}
			dir, err = config.ExpandPath(dir)
			if err != nil {
				return fmt.Errorf("resolve image directory: %w", err)
			}

			out := strings.TrimSpace(outFlag)
			if out == "" {
				out = filepath.Join(dir, imageListName)
			} else if out, err = config.ExpandPath(out); err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			paths, err := catalog.Scan(dir)
			if err != nil {
				return err
			}
			if err := catalog.WriteList(out, paths); err != nil {
				return err
			}

			built := catalog.Build(paths)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Wrote %s images in %s categories to %s\n",
				humanize.Comma(int64(built.Total())), humanize.Comma(int64(built.Len())), out)
			if !cfg.RemoteImages() && filepath.Clean(cfg.Paths.ImageRoot) != filepath.Clean(dir) {
				fmt.Fprintf(w, "Note: paths.image_root is %s; set it to %s to use this list.\n", cfg.Paths.ImageRoot, dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Image directory to scan (asks when omitted)")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Destination of the image list (default <dir>/"+imageListName+")")
	return cmd
}

// chooseImageDirectory asks for a directory, falling back to the configured
// local image root when no dialog can be shown.
func chooseImageDirectory(cfg *config.Config) (string, error) {
	dir, err := slideshow.ChooseDirectory("Choose the reference image folder")
	if err == nil {
		return dir, nil
	}
	if errors.Is(err, zenity.ErrCanceled) {
		return "", errors.New("no directory chosen")
	}
	if cfg.RemoteImages() {
		return "", fmt.Errorf("choose directory: %w (pass --dir)", err)
	}
	return cfg.Paths.ImageRoot, nil
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories and image counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			loadCtx, cancel := contextWithTimeout(cmd, catalogTimeout)
			defer cancel()
			paths, err := catalog.Load(loadCtx, cfg.Paths.Catalog, nil)
			if err != nil {
				return err
			}
			cat := catalog.Build(paths)

			w := cmd.OutOrStdout()
			if cat.Len() == 0 {
				fmt.Fprintf(w, "No images listed in %s\n", cfg.Paths.Catalog)
				return nil
			}

			var rows [][]string
			for _, group := range cat.Groups() {
				for _, category := range group.Categories {
					rows = append(rows, []string{
						group.Title,
						catalog.Label(group.Name, category),
						strconv.Itoa(len(cat.Images(category))),
					})
				}
			}
			fmt.Fprintln(w, renderTable(w, []string{"Group", "Category", "Images"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			fmt.Fprintf(w, "%s images in %s categories\n", humanize.Comma(int64(cat.Total())), humanize.Comma(int64(cat.Len())))
			return nil
		},
	}
}
