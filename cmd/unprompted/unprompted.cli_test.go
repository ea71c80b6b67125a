package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	unprompted "github.com/itsatony/go-unprompted"
)

// Test data constants
const (
	testTemplateContent = "Hello, {name}!"
	testDataJSON        = `{"name": "Ada"}`
	testExpectedOutput  = "Hello, Ada!"
	testInvalidContent  = "Items: {items: list of abc}"
	testDocumentContent = "---\ndescription: greeting\nmodel: doc-model\n---\nHello, {name}!"
)

// setupTestData creates test files in a temp directory
func setupTestData(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "template.txt"), []byte(testTemplateContent), FilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "data.json"), []byte(testDataJSON), FilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "invalid.txt"), []byte(testInvalidContent), FilePermissions))

	return tmpDir
}

// clearOpenAIEnv unsets the backend variables for the duration of the test
func clearOpenAIEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{unprompted.EnvAPIKey, unprompted.EnvBaseURL, unprompted.EnvOrganization} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// runCLI runs the CLI and returns exit code, stdout and stderr
func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(args, strings.NewReader(stdin), stdout, stderr)
	return code, stdout.String(), stderr.String()
}

// newCompletionServer serves canned completions in order and records the
// requested models
func newCompletionServer(t *testing.T, texts ...string) (*httptest.Server, *[]string) {
	t.Helper()
	models := &[]string{}
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(data, &req))
		model, _ := req["model"].(string)
		*models = append(*models, model)

		if !assert.Less(t, calls, len(texts)) {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body, err := json.Marshal(map[string]any{
			"choices": []map[string]any{{"text": texts[calls], "index": 0}},
		})
		assert.NoError(t, err)
		calls++

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server, models
}

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "")

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, CmdNameFill)
	assert.Contains(t, stdout, CmdNameValidate)
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "", "unknown")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, "unknown command")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "", CmdNameFill, "--nope")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, "nope")
}

// ==================== version ====================

func TestVersion_Text(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameVersion)

	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, CLIName)
	assert.Contains(t, stdout, version)
}

func TestVersion_JSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "", CmdNameVersion, "--"+FlagFormat, OutputFormatJSON)
	require.Equal(t, ExitCodeSuccess, code)

	var out versionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, version, out.Version)
	assert.NotEmpty(t, out.GoVersion)
}

func TestVersion_InvalidFormat(t *testing.T) {
	code, _, stderr := runCLI(t, "", CmdNameVersion, "-F", "xml")

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, ErrMsgInvalidFormat)
}

// ==================== fill ====================

func TestFill_SuppliedInputs(t *testing.T) {
	clearOpenAIEnv(t)
	dir := setupTestData(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{
			name: "inline data",
			args: []string{"-t", filepath.Join(dir, "template.txt"), "-d", testDataJSON},
		},
		{
			name: "data file",
			args: []string{"--template", filepath.Join(dir, "template.txt"), "--data-file", filepath.Join(dir, "data.json")},
		},
		{
			name:  "template from stdin",
			stdin: testTemplateContent,
			args:  []string{"-t", InputSourceStdin, "-d", testDataJSON},
		},
		{
			name:  "document with frontmatter",
			stdin: testDocumentContent,
			args:  []string{"-t", InputSourceStdin, "-d", testDataJSON},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{CmdNameFill, "-q"}, tt.args...)
			code, stdout, stderr := runCLI(t, tt.stdin, args...)

			assert.Equal(t, ExitCodeSuccess, code, stderr)
			assert.Equal(t, testExpectedOutput, stdout)
		})
	}
}

func TestFill_ListInput(t *testing.T) {
	clearOpenAIEnv(t)

	code, stdout, stderr := runCLI(t, "Features:\n{features: list of 2}Done",
		CmdNameFill, "-q", "-t", "-", "-d", `{"features": ["fast", "small"]}`)

	assert.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "Features:\n - fast\n - small\nDone", stdout)
}

func TestFill_OutputFile(t *testing.T) {
	clearOpenAIEnv(t)
	dir := setupTestData(t)
	outPath := filepath.Join(dir, "out.txt")

	code, stdout, _ := runCLI(t, "",
		CmdNameFill, "-q", "-t", filepath.Join(dir, "template.txt"), "-d", testDataJSON, "-o", outPath)
	require.Equal(t, ExitCodeSuccess, code)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, testExpectedOutput, string(data))
}

func TestFill_GeneratesMissingValues(t *testing.T) {
	clearOpenAIEnv(t)
	server, models := newCompletionServer(t, " Ada", " Lovelace")
	t.Setenv(unprompted.EnvAPIKey, "test-key")
	t.Setenv(unprompted.EnvBaseURL, server.URL+"/v1")

	code, stdout, stderr := runCLI(t, "First:{first}\nLast:{last}",
		CmdNameFill, "-q", "-t", "-", "--model", "flag-model")

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "First: Ada\nLast: Lovelace", stdout)
	assert.Equal(t, []string{"flag-model", "flag-model"}, *models)
}

func TestFill_DocumentModel(t *testing.T) {
	clearOpenAIEnv(t)
	server, models := newCompletionServer(t, "Grace")
	t.Setenv(unprompted.EnvAPIKey, "test-key")
	t.Setenv(unprompted.EnvBaseURL, server.URL+"/v1")

	code, stdout, stderr := runCLI(t, testDocumentContent, CmdNameFill, "-q", "-t", "-")

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "Hello, Grace!", stdout)
	assert.Equal(t, []string{"doc-model"}, *models)
}

func TestFill_EnvFile(t *testing.T) {
	clearOpenAIEnv(t)
	server, _ := newCompletionServer(t, " Ada")

	envPath := filepath.Join(t.TempDir(), "test.env")
	envContent := unprompted.EnvAPIKey + "=test-key\n" + unprompted.EnvBaseURL + "=" + server.URL + "/v1\n"
	require.NoError(t, os.WriteFile(envPath, []byte(envContent), FilePermissions))

	code, stdout, stderr := runCLI(t, "Name:{name}", CmdNameFill, "-q", "-t", "-", "--env-file", envPath)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, "Name: Ada", stdout)
}

func TestFill_MissingEnvFile(t *testing.T) {
	clearOpenAIEnv(t)

	code, _, stderr := runCLI(t, testTemplateContent,
		CmdNameFill, "-q", "-t", "-", "-d", testDataJSON, "--env-file", filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, ExitCodeInputError, code)
	assert.Contains(t, stderr, ErrMsgEnvFileFailed)
}

func TestFill_MissingAPIKey(t *testing.T) {
	clearOpenAIEnv(t)

	code, stdout, stderr := runCLI(t, "Name: {name}", CmdNameFill, "-q", "-t", "-")

	assert.Equal(t, ExitCodeError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, ErrMsgFillFailed)
	assert.Contains(t, stderr, unprompted.ErrMsgCompletionFailed)
}

func TestFill_Paused(t *testing.T) {
	clearOpenAIEnv(t)

	code, stdout, stderr := runCLI(t, "Before {answer: wait} after", CmdNameFill, "-q", "-t", "-")

	assert.Equal(t, ExitCodePaused, code)
	assert.Equal(t, "Before ", stdout)
	assert.Contains(t, stderr, "paused at {answer: wait}")
	assert.NotContains(t, stderr, "error:")
}

func TestFill_JSONOutput(t *testing.T) {
	clearOpenAIEnv(t)

	code, stdout, _ := runCLI(t, "Q: {q}\nA: {a: wait}",
		CmdNameFill, "-q", "-t", "-", "-d", `{"q": "why"}`, "-F", OutputFormatJSON)
	require.Equal(t, ExitCodePaused, code)

	var out fillOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, unprompted.StatePaused.String(), out.State)
	assert.Equal(t, "Q: why\nA: ", out.Text)
	assert.Equal(t, "{a: wait}", out.Pending)
	assert.Equal(t, "{a: wait}", out.Remaining)
}

func TestFill_FromStore(t *testing.T) {
	clearOpenAIEnv(t)
	storeDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(storeDir, "greeting"+unprompted.DocumentFileExtension), []byte(testDocumentContent), FilePermissions))

	code, stdout, stderr := runCLI(t, "",
		CmdNameFill, "-q", "--store-dir", storeDir, "--name", "greeting", "-d", testDataJSON)

	require.Equal(t, ExitCodeSuccess, code, stderr)
	assert.Equal(t, testExpectedOutput, stdout)

	code, _, stderr = runCLI(t, "",
		CmdNameFill, "-q", "--store-dir", storeDir, "--name", "missing")
	assert.Equal(t, ExitCodeInputError, code)
	assert.Contains(t, stderr, ErrMsgLoadTemplateFailed)
}

func TestFill_UsageErrors(t *testing.T) {
	clearOpenAIEnv(t)

	tests := []struct {
		name        string
		args        []string
		expectedMsg string
	}{
		{name: "no template", args: []string{CmdNameFill}, expectedMsg: ErrMsgMissingTemplate},
		{name: "template and name", args: []string{CmdNameFill, "-t", "x", "-n", "y"}, expectedMsg: ErrMsgConflictingTemplate},
		{name: "name without store", args: []string{CmdNameFill, "-n", "y"}, expectedMsg: ErrMsgMissingStore},
		{name: "two stores", args: []string{CmdNameFill, "-n", "y", "--store-dir", "a", "--postgres-dsn", "b"}, expectedMsg: ErrMsgConflictingStores},
		{name: "bad format", args: []string{CmdNameFill, "-t", "x", "-F", "yaml"}, expectedMsg: ErrMsgInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", tt.args...)

			assert.Equal(t, ExitCodeUsageError, code)
			assert.Contains(t, stderr, tt.expectedMsg)
		})
	}
}

func TestFill_InputErrors(t *testing.T) {
	clearOpenAIEnv(t)
	dir := setupTestData(t)

	tests := []struct {
		name        string
		stdin       string
		args        []string
		expectedMsg string
	}{
		{
			name:        "missing template file",
			args:        []string{"-t", filepath.Join(dir, "missing.txt")},
			expectedMsg: ErrMsgReadFileFailed,
		},
		{
			name:        "invalid json",
			stdin:       testTemplateContent,
			args:        []string{"-t", "-", "-d", "{not json"},
			expectedMsg: ErrMsgInvalidJSON,
		},
		{
			name:        "unclosed frontmatter",
			stdin:       "---\nmodel: x\nHello",
			args:        []string{"-t", "-"},
			expectedMsg: ErrMsgParseDocumentFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{CmdNameFill, "-q"}, tt.args...)
			code, _, stderr := runCLI(t, tt.stdin, args...)

			assert.Equal(t, ExitCodeInputError, code)
			assert.Contains(t, stderr, tt.expectedMsg)
		})
	}
}

func TestSpinnerCompleter_PassesThrough(t *testing.T) {
	var got unprompted.CompletionRequest
	next := unprompted.CompleterFunc(func(_ context.Context, req unprompted.CompletionRequest) (string, error) {
		got = req
		return " done", nil
	})

	spinner := newSpinnerCompleter(next, io.Discard)
	req := unprompted.CompletionRequest{Model: "m", Prompt: "p", Stop: unprompted.StopLine}

	text, err := spinner.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, " done", text)
	assert.Equal(t, req, got)
}

// ==================== validate ====================

func TestValidate_Valid(t *testing.T) {
	code, stdout, _ := runCLI(t, "{a}{b: multiline}{c: list of 2-4}{d: wait}", CmdNameValidate, "-t", "-")

	require.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, stdout, "a\t{a: line}")
	assert.Contains(t, stdout, "b\t{b: multiline}")
	assert.Contains(t, stdout, "c\t{c: list of 2-4}")
	assert.Contains(t, stdout, "d\t{d: wait}")
	assert.Contains(t, stdout, "valid: 4 slot(s)")
}

func TestValidate_Invalid(t *testing.T) {
	dir := setupTestData(t)

	code, stdout, stderr := runCLI(t, "", CmdNameValidate, "-t", filepath.Join(dir, "invalid.txt"))

	assert.Equal(t, ExitCodeValidationError, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, ErrMsgValidationFailed)
	assert.Contains(t, stderr, "list of abc")
}

func TestValidate_JSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "{n: list of 3}", CmdNameValidate, "-t", "-", "-F", OutputFormatJSON)
	require.Equal(t, ExitCodeSuccess, code)

	var out validateOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.True(t, out.Valid)
	assert.Equal(t, []slotOutput{{Name: "n", Type: "list", Min: 3, Max: 3}}, out.Slots)

	code, stdout, _ = runCLI(t, "{x: sometimes}", CmdNameValidate, "-t", "-", "-F", OutputFormatJSON)
	require.Equal(t, ExitCodeValidationError, code)
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.False(t, out.Valid)
	assert.NotEmpty(t, out.Error)
}

// ==================== list ====================

func TestList(t *testing.T) {
	storeDir := t.TempDir()
	for _, name := range []string{"beta", "alpha"} {
		path := filepath.Join(storeDir, name+unprompted.DocumentFileExtension)
		require.NoError(t, os.WriteFile(path, []byte(testTemplateContent), FilePermissions))
	}

	code, stdout, _ := runCLI(t, "", CmdNameList, "--store-dir", storeDir)
	require.Equal(t, ExitCodeSuccess, code)
	assert.Equal(t, "alpha\nbeta\n", stdout)

	code, stdout, _ = runCLI(t, "", CmdNameList, "--store-dir", storeDir, "-F", OutputFormatJSON)
	require.Equal(t, ExitCodeSuccess, code)
	var names []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &names))
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestList_NoStore(t *testing.T) {
	code, _, stderr := runCLI(t, "", CmdNameList)

	assert.Equal(t, ExitCodeUsageError, code)
	assert.Contains(t, stderr, ErrMsgMissingStore)
}
