package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"spamlab/internal/content"
	"spamlab/internal/models"
)

func newChaptersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters [number]",
		Short: "List the chapters, or print one in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := opts.catalog()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				n, err := content.ParseChapterID(args[0])
				if err != nil {
					return err
				}
				ch, err := catalog.Chapter(n)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), ch)
			}

			out := make([]models.ChapterSummary, 0, len(catalog.Chapters()))
			for _, ch := range catalog.Chapters() {
				out = append(out, models.ChapterSummary{
					Number:      ch.Number,
					Slug:        ch.Slug,
					Title:       ch.Title,
					Description: ch.Description,
					URL:         "/chapter/" + strconv.Itoa(ch.Number),
				})
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}
