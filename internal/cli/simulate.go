package cli

import (
	"github.com/spf13/cobra"

	"spamlab/internal/simulator"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the metric simulators",
	}
	cmd.AddCommand(newSimulateModelCmd(), newSimulateConfusionCmd(), newSimulateThresholdCmd())
	return cmd
}

func newSimulateModelCmd() *cobra.Command {
	var (
		model    string
		features int
		noJitter bool
	)

	cmd := &cobra.Command{
		Use:   "model",
		Short: "Simulated accuracy, precision and recall for a model",
		RunE: func(cmd *cobra.Command, args []string) error {
			sim := simulator.NewModelSimulator()
			if noJitter {
				sim.Jitter = simulator.NoJitter
			}
			result, err := sim.Simulate(model, features)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&model, "model", simulator.NaiveBayes, "naive_bayes, logistic_regression, svm or random_forest")
	cmd.Flags().IntVar(&features, "features", 3000, "Feature count (1000-9000 in steps of 500)")
	cmd.Flags().BoolVar(&noJitter, "no-jitter", false, "Disable the random noise")
	return cmd
}

func newSimulateConfusionCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "confusion",
		Short: "Confusion matrix at a decision threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := simulator.Confusion(threshold)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), m)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "Decision threshold (0.1-0.9)")
	return cmd
}

func newSimulateThresholdCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "threshold",
		Short: "Precision and recall trade-off at a decision threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := simulator.Tune(threshold)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), t)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "Decision threshold (0.1-0.9)")
	return cmd
}
