package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <session-id>",
		Short: "Dump a session's persisted state document as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docStore, closeStore, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			doc, err := docStore.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(doc)
			if err != nil {
				return err
			}
			cmd.Print(string(out))
			return nil
		},
	}
}
