package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	unprompted "github.com/itsatony/go-unprompted"
)

// fillConfig holds parsed fill command configuration
type fillConfig struct {
	templatePath string
	name         string
	dataJSON     string
	dataFilePath string
	outputPath   string
	format       string
	quiet        bool
	model        string
	temperature  float64
	maxTokens    int
}

// fillOutput is the JSON form of a fill result
type fillOutput struct {
	State     string            `json:"state"`
	Text      string            `json:"text"`
	Values    unprompted.Values `json:"values"`
	Pending   string            `json:"pending,omitempty"`
	Remaining string            `json:"remaining,omitempty"`
}

func newFillCmd(state *cliState) *cobra.Command {
	cfg := &fillConfig{}

	cmd := &cobra.Command{
		Use:   CmdNameFill,
		Short: "Fill a template, generating every slot not given in the data",
		Long: "Fill a template document. Slots named in --data or --data-file are inserted as given;\n" +
			"the rest are generated by the OpenAI completions API (OPENAI_API_KEY).\n" +
			"A {name: wait} slot without data stops the fill and prints the text so far.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, state, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.templatePath, FlagTemplate, FlagTemplateShort, "", "template document path, - for stdin")
	flags.StringVarP(&cfg.name, FlagName, FlagNameShort, "", "template name in the store")
	flags.StringVarP(&cfg.dataJSON, FlagData, FlagDataShort, "", "inputs as a JSON object")
	flags.StringVarP(&cfg.dataFilePath, FlagDataFile, FlagDataFileShort, "", "inputs from a JSON file")
	flags.StringVarP(&cfg.outputPath, FlagOutput, FlagOutputShort, FlagDefaultOutput, "output path, - for stdout")
	flags.StringVarP(&cfg.format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "output format: text or json")
	flags.BoolVarP(&cfg.quiet, FlagQuiet, FlagQuietShort, false, "no spinner")
	flags.StringVarP(&cfg.model, FlagModel, FlagModelShort, "", "model override")
	flags.Float64Var(&cfg.temperature, FlagTemperature, 0, "temperature override")
	flags.IntVar(&cfg.maxTokens, FlagMaxTokens, 0, "max tokens override")

	return cmd
}

func runFill(cmd *cobra.Command, state *cliState, cfg *fillConfig) error {
	if err := validateFormat(cfg.format); err != nil {
		return err
	}
	ctx := cmd.Context()

	doc, err := state.loadDocument(ctx, cfg.templatePath, cfg.name)
	if err != nil {
		return err
	}

	data, err := loadData(cfg.dataJSON, cfg.dataFilePath)
	if err != nil {
		return newExitError(ExitCodeInputError, ErrMsgInvalidJSON, err)
	}

	var completer unprompted.Completer = unprompted.NewOpenAIBackend(unprompted.BackendConfigFromEnv(), state.logger)
	if !cfg.quiet {
		completer = newSpinnerCompleter(completer, state.stderr)
	}

	opts := []unprompted.Option{
		unprompted.WithCompleter(completer),
		unprompted.WithLogger(state.logger),
	}
	if cmd.Flags().Changed(FlagModel) {
		opts = append(opts, unprompted.WithModel(cfg.model))
	}
	if cmd.Flags().Changed(FlagTemperature) {
		opts = append(opts, unprompted.WithTemperature(cfg.temperature))
	}
	if cmd.Flags().Changed(FlagMaxTokens) {
		opts = append(opts, unprompted.WithMaxTokens(cfg.maxTokens))
	}

	result, err := doc.NewPrompt(opts...).Fill(ctx, data)
	if err != nil {
		return newExitError(ExitCodeError, ErrMsgFillFailed, err)
	}

	output := []byte(result.Text)
	if cfg.format == OutputFormatJSON {
		out := fillOutput{
			State:  result.State.String(),
			Text:   result.Text,
			Values: result.Values,
		}
		if result.IsPaused() {
			out.Pending = result.Pending.String()
			out.Remaining = result.Remaining
		}
		output, err = json.MarshalIndent(out, "", "  ")
		if err != nil {
			return newExitError(ExitCodeError, ErrMsgJSONMarshalFailed, err)
		}
		output = append(output, FmtNewline...)
	}

	if err := writeOutput(cfg.outputPath, output, state.stdout); err != nil {
		return newExitError(ExitCodeError, ErrMsgWriteOutputFailed, err)
	}

	if result.IsPaused() {
		fmt.Fprintf(state.stderr, FmtPausedNote, result.Pending, result.Pending.Name)
		return newExitError(ExitCodePaused, "", nil)
	}
	return nil
}
