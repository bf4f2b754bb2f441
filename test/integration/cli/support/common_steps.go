package support

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// iHaveACSVFileContaining writes the scenario table to a temp CSV file.
// The file path is substituted for {csv_file} in subsequent commands.
func (testCtx *TestContext) iHaveACSVFileContaining(table *godog.Table) error {
	if len(table.Rows) == 0 {
		return errors.New("CSV table is empty")
	}

	path := testCtx.GetTempFile(".csv")
	var b strings.Builder
	w := csv.NewWriter(&b)
	for _, row := range table.Rows {
		record := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			record[i] = cell.Value
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to build CSV fixture: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to build CSV fixture: %w", err)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write CSV fixture: %w", err)
	}
	testCtx.LastCSVFile = path
	return nil
}

// substituteCommandVariables replaces placeholders in command strings.
func (testCtx *TestContext) substituteCommandVariables(command string) string {
	if testCtx.LastCSVFile != "" {
		command = strings.ReplaceAll(command, "{csv_file}", testCtx.LastCSVFile)
	}
	command = strings.ReplaceAll(command, "{temp_dir}", testCtx.TempDir)
	return command
}

// iRunCommand executes a command and stores the result.
func (testCtx *TestContext) iRunCommand(command string) error {
	command = testCtx.substituteCommandVariables(command)

	testCtx.LastCommand = command
	testCtx.LastStartTime = time.Now()

	parts := strings.Fields(command)
	if len(parts) == 0 {
		return errors.New("empty command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = testCtx.WorkingDir
	cmd.Env = append(os.Environ(), testCtx.EnvVars...)

	output, err := cmd.CombinedOutput()
	testCtx.LastOutput = string(output)
	testCtx.LastError = err
	testCtx.LastDuration = time.Since(testCtx.LastStartTime)

	if err != nil {
		exitError := &exec.ExitError{}
		if errors.As(err, &exitError) {
			testCtx.LastExitCode = exitError.ExitCode()
		} else {
			testCtx.LastExitCode = -1
		}
	} else {
		testCtx.LastExitCode = 0
	}

	return nil
}

// theCommandShouldSucceed verifies the command succeeded.
func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastExitCode != 0 {
		return fmt.Errorf("command failed with exit code %d: %w\nOutput: %s",
			testCtx.LastExitCode, testCtx.LastError, testCtx.LastOutput)
	}
	return nil
}

// theCommandShouldFail verifies the command failed.
func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastExitCode == 0 {
		return fmt.Errorf("command succeeded when it should have failed\nOutput: %s", testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldContain verifies the output contains specific text.
func (testCtx *TestContext) theOutputShouldContain(expectedText string) error {
	if !strings.Contains(testCtx.LastOutput, expectedText) {
		return fmt.Errorf("output does not contain '%s'\nActual output: %s", expectedText, testCtx.LastOutput)
	}
	return nil
}

// theOutputShouldNotContain verifies the output does not contain specific text.
func (testCtx *TestContext) theOutputShouldNotContain(text string) error {
	if strings.Contains(testCtx.LastOutput, text) {
		return fmt.Errorf("output contains '%s' but should not\nActual output: %s", text, testCtx.LastOutput)
	}
	return nil
}

// extractJSONPart returns the JSON portion of the output, skipping any
// preceding log lines.
func (testCtx *TestContext) extractJSONPart() (string, error) {
	output := strings.TrimSpace(testCtx.LastOutput)
	jsonStart := -1
	for i, r := range output {
		if r == '{' || r == '[' {
			jsonStart = i
			break
		}
	}
	if jsonStart == -1 {
		return "", fmt.Errorf("no JSON found in output: %s", testCtx.LastOutput)
	}
	return output[jsonStart:], nil
}

// theOutputShouldBeValidJSON verifies the output is valid JSON.
func (testCtx *TestContext) theOutputShouldBeValidJSON() error {
	jsonPart, err := testCtx.extractJSONPart()
	if err != nil {
		return err
	}
	var js json.RawMessage
	if err := json.Unmarshal([]byte(jsonPart), &js); err != nil {
		return fmt.Errorf("output is not valid JSON: %w\nJSON part: %s", err, jsonPart)
	}
	return nil
}

// theJSONShouldContain verifies JSON contains a specific field.
func (testCtx *TestContext) theJSONShouldContain(field string) error {
	jsonPart, err := testCtx.extractJSONPart()
	if err != nil {
		return err
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(jsonPart), &data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	// Handle nested field paths (e.g., "summary.total")
	parts := strings.Split(field, ".")
	current := data
	for i, part := range parts {
		val, exists := current[part]
		if !exists {
			return fmt.Errorf("field '%s' not found in JSON", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return nil
		}
		nextMap, ok := val.(map[string]interface{})
		if !ok {
			return fmt.Errorf("cannot navigate deeper into non-object field '%s'", part)
		}
		current = nextMap
	}
	return nil
}

// theJSONFieldShouldBe verifies a JSON field has a specific string value.
func (testCtx *TestContext) theJSONFieldShouldBe(field, expected string) error {
	jsonPart, err := testCtx.extractJSONPart()
	if err != nil {
		return err
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(jsonPart), &data); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	val, exists := data[field]
	if !exists {
		return fmt.Errorf("field '%s' not found in JSON", field)
	}
	actual := fmt.Sprintf("%v", val)
	if actual != expected {
		return fmt.Errorf("field '%s' is '%s', expected '%s'", field, actual, expected)
	}
	return nil
}

// theOutputShouldBeValidCSV verifies the output is valid CSV.
func (testCtx *TestContext) theOutputShouldBeValidCSV() error {
	lines := strings.Split(strings.TrimSpace(testCtx.LastOutput), "\n")
	if len(lines) < 1 {
		return errors.New("CSV output is empty")
	}
	if !strings.Contains(lines[0], ",") {
		return errors.New("CSV output does not contain comma separators")
	}
	return nil
}

// theErrorShouldMention verifies the error message contains specific text.
func (testCtx *TestContext) theErrorShouldMention(errorText string) error {
	if testCtx.LastError == nil && testCtx.LastExitCode == 0 {
		return fmt.Errorf("no error occurred, but expected error containing '%s'", errorText)
	}

	fullErrorText := testCtx.LastOutput
	if testCtx.LastError != nil {
		fullErrorText += " " + testCtx.LastError.Error()
	}

	if !strings.Contains(strings.ToLower(fullErrorText), strings.ToLower(errorText)) {
		return fmt.Errorf("error does not contain '%s'\nActual error: %s", errorText, fullErrorText)
	}
	return nil
}

// theFileShouldExist verifies a file exists.
func (testCtx *TestContext) theFileShouldExist(filename string) error {
	fullPath := testCtx.substituteCommandVariables(filename)
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(testCtx.WorkingDir, fullPath)
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", fullPath)
	}
	return nil
}

// theFileShouldContain verifies a file contains specific content.
func (testCtx *TestContext) theFileShouldContain(filename, expectedContent string) error {
	if err := testCtx.theFileShouldExist(filename); err != nil {
		return err
	}

	fullPath := testCtx.substituteCommandVariables(filename)
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(testCtx.WorkingDir, fullPath)
	}
	content, err := os.ReadFile(fullPath) //nolint:gosec // G304: Test file reading with controlled path
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", fullPath, err)
	}

	if !strings.Contains(string(content), expectedContent) {
		return fmt.Errorf("file %s does not contain '%s'\nActual content: %s",
			filename, expectedContent, string(content))
	}
	return nil
}

// theEnvironmentVariableIsSetTo sets an environment variable for commands.
func (testCtx *TestContext) theEnvironmentVariableIsSetTo(name, value string) error {
	testCtx.AddEnvVar(name, value)
	return nil
}

// theOutputShouldContainUsageInformation verifies help output.
func (testCtx *TestContext) theOutputShouldContainUsageInformation() error {
	usageIndicators := []string{"Usage:", "usage:"}
	for _, indicator := range usageIndicators {
		if strings.Contains(testCtx.LastOutput, indicator) {
			return nil
		}
	}
	return fmt.Errorf("output does not contain usage information: %s", testCtx.LastOutput)
}

// theOutputShouldListAvailableSubcommands verifies subcommand listing.
func (testCtx *TestContext) theOutputShouldListAvailableSubcommands() error {
	subcommands := []string{"decode", "validate", "serve"}
	for _, name := range subcommands {
		if !strings.Contains(testCtx.LastOutput, name) {
			return fmt.Errorf("subcommand not listed: %s", name)
		}
	}
	return nil
}

// buildInformationShouldBeIncluded verifies version output format.
func (testCtx *TestContext) buildInformationShouldBeIncluded() error {
	requiredParts := []string{"version", "Commit:", "Date:"}
	for _, part := range requiredParts {
		if !strings.Contains(testCtx.LastOutput, part) {
			return fmt.Errorf("version output missing '%s'\nActual output: %s", part, testCtx.LastOutput)
		}
	}
	return nil
}

// RegisterCommonSteps registers all common step definitions.
func (testCtx *TestContext) RegisterCommonSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I have a CSV file containing:$`, testCtx.iHaveACSVFileContaining)
	sc.Step(`^I run "([^"]*)"$`, testCtx.iRunCommand)
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the output should not contain "([^"]*)"$`, testCtx.theOutputShouldNotContain)
	sc.Step(`^the output should be valid JSON$`, testCtx.theOutputShouldBeValidJSON)
	sc.Step(`^the output should be valid CSV$`, testCtx.theOutputShouldBeValidCSV)
	sc.Step(`^the JSON should contain "([^"]*)"$`, testCtx.theJSONShouldContain)
	sc.Step(`^the JSON field "([^"]*)" should be "([^"]*)"$`, testCtx.theJSONFieldShouldBe)
	sc.Step(`^the error should mention "([^"]*)"$`, testCtx.theErrorShouldMention)
	sc.Step(`^the file "([^"]*)" should exist$`, testCtx.theFileShouldExist)
	sc.Step(`^the file "([^"]*)" should contain "([^"]*)"$`, testCtx.theFileShouldContain)
	sc.Step(`^the environment variable "([^"]*)" is set to "([^"]*)"$`, testCtx.theEnvironmentVariableIsSetTo)
	sc.Step(`^the output should contain usage information$`, testCtx.theOutputShouldContainUsageInformation)
	sc.Step(`^the output should list available subcommands$`, testCtx.theOutputShouldListAvailableSubcommands)
	sc.Step(`^build information should be included$`, testCtx.buildInformationShouldBeIncluded)
}
