package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=... -X main.buildTime=..."
var (
	version   = "dev"
	commit    = VersionUnknown
	buildTime = VersionUnknown
)

// versionOutput represents JSON output for version
type versionOutput struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

func getVersionInfo() versionOutput {
	info := versionOutput{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	// Fall back to VCS stamps for plain go build / go install
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.Commit == VersionUnknown {
					info.Commit = setting.Value
				}
			case "vcs.time":
				if info.BuildTime == VersionUnknown {
					info.BuildTime = setting.Value
				}
			}
		}
	}
	return info
}

func newVersionCmd(state *cliState) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   CmdNameVersion,
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			info := getVersionInfo()
			if format == OutputFormatJSON {
				jsonBytes, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return newExitError(ExitCodeError, ErrMsgJSONMarshalFailed, err)
				}
				fmt.Fprintln(state.stdout, string(jsonBytes))
				return nil
			}

			fmt.Fprintf(state.stdout, VersionTextTemplate+FmtNewline,
				CLIName, info.Version, info.Commit, info.BuildTime, info.GoVersion)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, FlagFormat, FlagFormatShort, FlagDefaultFormat, "output format: text or json")
	return cmd
}
