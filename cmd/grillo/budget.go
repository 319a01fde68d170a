package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tiktoken-go/tokenizer"

	"github.com/go-go-golems/grillo/pkg/budget"
)

func newBudgetCommand() *cobra.Command {
	var (
		model        string
		maxInput     int
		scaffoldFile string
		scaffoldSize int
		reserved     int
		timelineLog  bool
	)

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Compute the history token budget for the next outbound request",
		RunE: func(cmd *cobra.Command, args []string) error {
			scaffold := scaffoldSize
			if scaffoldFile != "" {
				raw, err := os.ReadFile(scaffoldFile)
				if err != nil {
					return err
				}
				codec, err := tokenizer.ForModel(tokenizer.Model(model))
				if err != nil {
					return err
				}
				ids, _, err := codec.Encode(string(raw))
				if err != nil {
					return err
				}
				scaffold = len(ids)
			}

			b := budget.Compute(maxInput, scaffold, reserved, timelineLog)
			cmd.Printf("max input:             %d\n", b.MaxInput)
			cmd.Printf("scaffold estimate:     %d\n", b.ScaffoldEstimate)
			cmd.Printf("reserved for tracking: %d\n", b.ReservedForTracking)
			cmd.Printf("available for history: %d\n", b.AvailableForHistory)
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "gpt-4", "Model used to size the scaffold")
	cmd.Flags().IntVar(&maxInput, "max-input", 128000, "Provider input token limit")
	cmd.Flags().StringVar(&scaffoldFile, "scaffold-file", "", "File holding the prompt scaffold; token-counted with the model codec")
	cmd.Flags().IntVar(&scaffoldSize, "scaffold-tokens", 6000, "Scaffold token estimate (ignored when --scaffold-file is set)")
	cmd.Flags().IntVar(&reserved, "reserved", budget.DefaultReservedTracking, "Tokens reserved for auxiliary entity tracking")
	cmd.Flags().BoolVar(&timelineLog, "timeline-log", false, "Account for the duplicate timeline-log rendering in the request")
	return cmd
}
