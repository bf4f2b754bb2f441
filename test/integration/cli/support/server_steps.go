package support

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/cucumber/godog"
	"github.com/postpros/mailcheck/internal/batch"
	"github.com/postpros/mailcheck/internal/server"
)

// APITestServer wraps an httptest server around the validation API so
// scenarios can exercise endpoints without spawning a process.
type APITestServer struct {
	HTTP *httptest.Server
	API  *server.Server
}

// Close shuts the test server down.
func (s *APITestServer) Close() {
	if s.HTTP != nil {
		s.HTTP.Close()
	}
}

// theValidationServerIsRunning starts an in-process API server.
func (testCtx *TestContext) theValidationServerIsRunning() error {
	apiServer := server.NewServer(server.Config{
		Host:        "localhost",
		Port:        0,
		CORSOrigin:  "*",
		MaxUploadMB: 10,
		TimeoutSec:  30,
		Batch:       batch.DefaultConfig(),
	})

	mux := http.NewServeMux()
	apiServer.SetupRoutes(mux)

	testCtx.APIServer = &APITestServer{
		HTTP: httptest.NewServer(mux),
		API:  apiServer,
	}
	return nil
}

// recordResponse captures status, headers and body from an HTTP response.
func (testCtx *TestContext) recordResponse(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	testCtx.LastHTTPStatusCode = resp.StatusCode
	testCtx.LastHTTPResponse = string(body)
	testCtx.LastHTTPHeaders = map[string]string{}
	for name := range resp.Header {
		testCtx.LastHTTPHeaders[name] = resp.Header.Get(name)
	}

	// Make HTTP responses visible to the shared output assertions.
	testCtx.LastOutput = testCtx.LastHTTPResponse
	return nil
}

// iSendAGETRequestTo performs a GET request against the running server.
func (testCtx *TestContext) iSendAGETRequestTo(path string) error {
	if testCtx.APIServer == nil {
		return errors.New("validation server is not running")
	}

	resp, err := http.Get(testCtx.APIServer.HTTP.URL + path) //nolint:noctx // test request
	if err != nil {
		return fmt.Errorf("GET %s failed: %w", path, err)
	}
	return testCtx.recordResponse(resp)
}

// iPostABarcodeTo sends a decode request with the given barcode.
func (testCtx *TestContext) iPostABarcodeTo(barcode, path string) error {
	if testCtx.APIServer == nil {
		return errors.New("validation server is not running")
	}

	payload, err := json.Marshal(map[string]string{"barcode": barcode})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := http.Post( //nolint:noctx // test request
		testCtx.APIServer.HTTP.URL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("POST %s failed: %w", path, err)
	}
	return testCtx.recordResponse(resp)
}

// iUploadTheCSVFileTo uploads the scenario's CSV fixture as multipart form data.
func (testCtx *TestContext) iUploadTheCSVFileTo(path string) error {
	if testCtx.APIServer == nil {
		return errors.New("validation server is not running")
	}
	if testCtx.LastCSVFile == "" {
		return errors.New("no CSV fixture has been created")
	}

	content, err := readFileString(testCtx.LastCSVFile)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "upload.csv")
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		return fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	resp, err := http.Post( //nolint:noctx // test request
		testCtx.APIServer.HTTP.URL+path, writer.FormDataContentType(), &buf)
	if err != nil {
		return fmt.Errorf("POST %s failed: %w", path, err)
	}
	return testCtx.recordResponse(resp)
}

// theResponseStatusShouldBe verifies the HTTP status code.
func (testCtx *TestContext) theResponseStatusShouldBe(status int) error {
	if testCtx.LastHTTPStatusCode != status {
		return fmt.Errorf("expected status %d, got %d\nResponse: %s",
			status, testCtx.LastHTTPStatusCode, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseShouldContain verifies the response body content.
func (testCtx *TestContext) theResponseShouldContain(text string) error {
	if !strings.Contains(testCtx.LastHTTPResponse, text) {
		return fmt.Errorf("response does not contain '%s'\nActual response: %s",
			text, testCtx.LastHTTPResponse)
	}
	return nil
}

// theResponseHeaderShouldBe verifies a response header value.
func (testCtx *TestContext) theResponseHeaderShouldBe(name, value string) error {
	actual, ok := testCtx.LastHTTPHeaders[name]
	if !ok {
		return fmt.Errorf("response header '%s' not present", name)
	}
	if actual != value {
		return fmt.Errorf("header '%s' is '%s', expected '%s'", name, actual, value)
	}
	return nil
}

// RegisterServerSteps registers the API server step definitions.
func (testCtx *TestContext) RegisterServerSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the validation server is running$`, testCtx.theValidationServerIsRunning)
	sc.Step(`^I send a GET request to "([^"]*)"$`, testCtx.iSendAGETRequestTo)
	sc.Step(`^I post the barcode "([^"]*)" to "([^"]*)"$`, testCtx.iPostABarcodeTo)
	sc.Step(`^I upload the CSV file to "([^"]*)"$`, testCtx.iUploadTheCSVFileTo)
	sc.Step(`^the response status should be (\d+)$`, testCtx.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, testCtx.theResponseShouldContain)
	sc.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, testCtx.theResponseHeaderShouldBe)
}

// readFileString reads a whole file into a string.
func readFileString(path string) (string, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: test fixture path
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}
