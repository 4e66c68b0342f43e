package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	bearer       string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^the auth service is running$`, s.theAuthServiceIsRunning)
	sc.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, s.iAmLoggedInAs)

	// Authentication steps
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInAs)
	sc.Step(`^I register username "([^"]*)" email "([^"]*)" password "([^"]*)"$`, s.iRegister)
	sc.Step(`^I should receive a valid bearer token$`, s.iShouldReceiveAValidBearerToken)
	sc.Step(`^the response should list role "([^"]*)"$`, s.theResponseShouldListRole)

	// Generic request steps
	sc.Step(`^I GET "([^"]*)"$`, s.iGET)
	sc.Step(`^I DELETE "([^"]*)"$`, s.iDELETE)
	sc.Step(`^I POST "([^"]*)" with body:$`, s.iPOSTWithBody)
	sc.Step(`^I PUT "([^"]*)" with body:$`, s.iPUTWithBody)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response body should contain "([^"]*)"$`, s.theResponseBodyShouldContain)
}

// Background steps

func (s *StepsContext) theAuthServiceIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) iAmLoggedInAs(username, pass string) error {
	if err := s.iLogInAs(username, pass); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login as %s failed with status %d: %s",
			username, s.response.StatusCode, string(s.responseBody))
	}
	return s.iShouldReceiveAValidBearerToken()
}

// Authentication steps

func (s *StepsContext) iLogInAs(username, pass string) error {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": pass,
	})
	return s.doRequest("POST", "/api/auth/login", bytes.NewReader(body))
}

func (s *StepsContext) iRegister(username, email, pass string) error {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    email,
		"password": pass,
	})
	return s.doRequest("POST", "/api/auth/register", bytes.NewReader(body))
}

func (s *StepsContext) iShouldReceiveAValidBearerToken() error {
	var resp struct {
		Token string   `json:"token"`
		Type  string   `json:"type"`
		Roles []string `json:"roles"`
	}
	if err := json.Unmarshal(s.responseBody, &resp); err != nil {
		return fmt.Errorf("response is not a token response: %w", err)
	}
	if resp.Type != "Bearer" {
		return fmt.Errorf("expected token type Bearer, got %q", resp.Type)
	}
	if resp.Token == "" {
		return fmt.Errorf("token is empty")
	}
	s.bearer = resp.Token
	return nil
}

func (s *StepsContext) theResponseShouldListRole(role string) error {
	var resp struct {
		Roles []string `json:"roles"`
	}
	if err := json.Unmarshal(s.responseBody, &resp); err != nil {
		return err
	}
	for _, name := range resp.Roles {
		if name == role {
			return nil
		}
	}
	return fmt.Errorf("role %q not in %v", role, resp.Roles)
}

// Generic request steps

func (s *StepsContext) iGET(path string) error {
	return s.doRequest("GET", path, nil)
}

func (s *StepsContext) iDELETE(path string) error {
	return s.doRequest("DELETE", path, nil)
}

func (s *StepsContext) iPOSTWithBody(path string, body *godog.DocString) error {
	return s.doRequest("POST", path, strings.NewReader(body.Content))
}

func (s *StepsContext) iPUTWithBody(path string, body *godog.DocString) error {
	return s.doRequest("PUT", path, strings.NewReader(body.Content))
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s",
			status, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseBodyShouldContain(substr string) error {
	if !strings.Contains(string(s.responseBody), substr) {
		return fmt.Errorf("response body %q does not contain %q", string(s.responseBody), substr)
	}
	return nil
}

func (s *StepsContext) doRequest(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, s.tc.ServerURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+s.bearer)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}
