package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"spamlab/internal/models"
	"spamlab/internal/ngram"
	"spamlab/internal/scorer"
	"spamlab/internal/validation"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [message]",
		Short: "Run the keyword predictor over a message (stdin when omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if ok, msg := validation.ValidateMessage(message); !ok {
				return errors.New(msg)
			}
			return writeJSON(cmd.OutOrStdout(), scorer.Score(message))
		},
	}
}

func newNgramsCmd(opts *rootOptions) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "ngrams [text]",
		Short: "Split text into n-grams (the demo sentence when omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < ngram.MinSize || n > ngram.MaxSize {
				return errors.New("--n must be between 1 and 4")
			}

			var text string
			if len(args) > 0 {
				text = strings.Join(args, " ")
			} else {
				catalog, err := opts.catalog()
				if err != nil {
					return err
				}
				text = catalog.DemoSentence
			}

			grams := ngram.Split(text, n)
			return writeJSON(cmd.OutOrStdout(), models.NgramsResponse{
				Text:   text,
				N:      n,
				Label:  ngram.Label(n),
				Count:  len(grams),
				Ngrams: grams,
			})
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 1, "Window size (1-4)")
	return cmd
}

func newVectorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vectorize [message]",
		Short: "Print the bag-of-words counts for a message (stdin when omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if ok, msg := validation.ValidateMessage(message); !ok {
				return errors.New(msg)
			}

			terms := ngram.Vectorize(message)
			return writeJSON(cmd.OutOrStdout(), models.VectorResponse{
				Message:    message,
				Vocabulary: len(terms),
				Terms:      terms,
			})
		},
	}
}
