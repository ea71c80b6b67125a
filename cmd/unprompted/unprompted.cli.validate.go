package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	templatePath string
	name         string
	format       string
}

// slotOutput is the JSON form of one slot
type slotOutput struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Min  int    `json:"min,omitempty"`
	Max  int    `json:"max,omitempty"`
}

// validateOutput is the JSON form of a validation result
type validateOutput struct {
	Valid bool         `json:"valid"`
	Error string       `json:"error,omitempty"`
	Slots []slotOutput `json:"slots"`
}

func newValidateCmd(state *cliState) *cobra.Command {
	cfg := &validateConfig{}

	cmd := &cobra.Command{
		Use:   CmdNameValidate,
		Short: "Check every slot descriptor in a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, state, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.templatePath, FlagTemplate, FlagTemplateShort, "", "template document path, - for stdin")
	flags.StringVarP(&cfg.name, FlagName, FlagNameShort, "", "template name in the store")
	flags.StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "output format: text or json")

	return cmd
}

func runValidate(cmd *cobra.Command, state *cliState, cfg *validateConfig) error {
	if err := validateFormat(cfg.format); err != nil {
		return err
	}

	doc, err := state.loadDocument(cmd.Context(), cfg.templatePath, cfg.name)
	if err != nil {
		return err
	}

	slots, slotErr := doc.Template().Slots()

	if cfg.format == OutputFormatJSON {
		out := validateOutput{Valid: slotErr == nil, Slots: make([]slotOutput, 0, len(slots))}
		if slotErr != nil {
			out.Error = slotErr.Error()
		}
		for _, slot := range slots {
			out.Slots = append(out.Slots, slotOutput{
				Name: slot.Name,
				Type: slot.Type.String(),
				Min:  slot.Min,
				Max:  slot.Max,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return newExitError(ExitCodeError, ErrMsgJSONMarshalFailed, err)
		}
		fmt.Fprintln(state.stdout, string(data))
	} else if slotErr == nil {
		for _, slot := range slots {
			fmt.Fprintf(state.stdout, FmtSlotLine, slot.Name, slot)
		}
		fmt.Fprintf(state.stdout, FmtValidTemplate, len(slots))
	}

	if slotErr != nil {
		return newExitError(ExitCodeValidationError, ErrMsgValidationFailed, slotErr)
	}
	return nil
}
