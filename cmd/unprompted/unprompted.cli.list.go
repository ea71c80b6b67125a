package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(state *cliState) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   CmdNameList,
		Short: "List template names in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			store, err := state.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.List(cmd.Context())
			if err != nil {
				return newExitError(ExitCodeError, ErrMsgListFailed, err)
			}

			if format == OutputFormatJSON {
				data, err := json.MarshalIndent(names, "", "  ")
				if err != nil {
					return newExitError(ExitCodeError, ErrMsgJSONMarshalFailed, err)
				}
				fmt.Fprintln(state.stdout, string(data))
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(state.stdout, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "output format: text or json")
	return cmd
}
