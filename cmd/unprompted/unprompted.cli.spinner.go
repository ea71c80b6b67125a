package main

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	unprompted "github.com/itsatony/go-unprompted"
)

// spinnerCompleter shows a spinner on stderr while each completion runs
type spinnerCompleter struct {
	next unprompted.Completer
	bar  *progressbar.ProgressBar
}

func newSpinnerCompleter(next unprompted.Completer, w io.Writer) *spinnerCompleter {
	return &spinnerCompleter{
		next: next,
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Starting..."),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSpinnerType(14),
		),
	}
}

func (s *spinnerCompleter) Complete(ctx context.Context, req unprompted.CompletionRequest) (string, error) {
	s.bar.Describe(fmt.Sprintf(FmtSpinnerDesc, req.Model, req.Stop))
	_ = s.bar.Add(1)
	defer func() {
		_ = s.bar.Clear()
	}()

	return s.next.Complete(ctx, req)
}
