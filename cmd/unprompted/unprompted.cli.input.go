package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"

	unprompted "github.com/itsatony/go-unprompted"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// loadData decodes the fill inputs from a file or an inline JSON object.
// The file wins when both are given.
func loadData(jsonStr, filePath string) (unprompted.Values, error) {
	var jsonData []byte

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		jsonData = data
	} else if jsonStr != "" {
		jsonData = []byte(jsonStr)
	} else {
		return unprompted.Values{}, nil
	}

	var result unprompted.Values
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = unprompted.Values{}
	}

	return result, nil
}

// openStore opens the template store selected by the persistent flags
func (s *cliState) openStore() (unprompted.TemplateStore, error) {
	var driver, conn string
	switch {
	case s.storeDir != "" && s.postgresDSN != "":
		return nil, newExitError(ExitCodeUsageError, ErrMsgConflictingStores, nil)
	case s.storeDir != "":
		driver, conn = unprompted.StoreDriverFilesystem, s.storeDir
	case s.postgresDSN != "":
		driver, conn = unprompted.StoreDriverPostgres, s.postgresDSN
	default:
		return nil, newExitError(ExitCodeUsageError, ErrMsgMissingStore, nil)
	}

	store, err := unprompted.OpenStore(driver, conn)
	if err != nil {
		return nil, newExitError(ExitCodeError, ErrMsgOpenStoreFailed, err)
	}
	s.logger.Debug(LogMsgStoreOpened, zap.String(LogFieldStore, driver))
	return store, nil
}

// loadDocument reads the template document from --template (a path or "-")
// or from the store by --name
func (s *cliState) loadDocument(ctx context.Context, templatePath, name string) (*unprompted.Document, error) {
	switch {
	case templatePath != "" && name != "":
		return nil, newExitError(ExitCodeUsageError, ErrMsgConflictingTemplate, nil)
	case templatePath != "":
		data, err := readInput(templatePath, s.stdin)
		if err != nil {
			return nil, newExitError(ExitCodeInputError, ErrMsgReadFileFailed, err)
		}
		doc, err := unprompted.ParseDocument(data)
		if err != nil {
			return nil, newExitError(ExitCodeInputError, ErrMsgParseDocumentFailed, err)
		}
		return doc, nil
	case name != "":
		store, err := s.openStore()
		if err != nil {
			return nil, err
		}
		defer store.Close()

		stored, err := store.Get(ctx, name)
		if err != nil {
			code := ExitCodeError
			if errors.Is(err, unprompted.ErrTemplateNotFound) {
				code = ExitCodeInputError
			}
			return nil, newExitError(code, ErrMsgLoadTemplateFailed, err)
		}
		doc, err := stored.Document()
		if err != nil {
			return nil, newExitError(ExitCodeInputError, ErrMsgParseDocumentFailed, err)
		}
		return doc, nil
	default:
		return nil, newExitError(ExitCodeUsageError, ErrMsgMissingTemplate, nil)
	}
}

func validateFormat(format string) error {
	if format != OutputFormatText && format != OutputFormatJSON {
		return newExitError(ExitCodeUsageError, ErrMsgInvalidFormat, nil)
	}
	return nil
}
