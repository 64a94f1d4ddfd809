package support

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// RegisterStatsSteps registers step definitions for stats endpoints.
func (testCtx *TestContext) RegisterStatsSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I clear the statistics$`, testCtx.iClearTheStatistics)

	sc.Step(`^the response should be a JSON array of length (\d+)$`, testCtx.theResponseShouldBeAJSONArrayOfLength)
	sc.Step(`^the response should be an empty JSON array$`, testCtx.theResponseShouldBeAnEmptyJSONArray)
	sc.Step(`^the JSON array should contain "([^"]*)"$`, testCtx.theJSONArrayShouldContain)
	sc.Step(`^element (\d+) of the JSON array should be "([^"]*)"$`, testCtx.elementOfTheJSONArrayShouldBe)
	sc.Step(`^element (\d+) of the JSON array should have "([^"]*)" equal to (\d+)$`,
		testCtx.elementShouldHaveFieldEqual)
}

func (testCtx *TestContext) iClearTheStatistics() error {
	return testCtx.do(http.MethodDelete, "/stats", nil)
}

func (testCtx *TestContext) decodeArray() ([]json.RawMessage, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(testCtx.LastBody, &arr); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w (body: %q)", err, string(testCtx.LastBody))
	}
	return arr, nil
}

func (testCtx *TestContext) theResponseShouldBeAJSONArrayOfLength(length int) error {
	arr, err := testCtx.decodeArray()
	if err != nil {
		return err
	}
	if len(arr) != length {
		return fmt.Errorf("expected array of length %d, got %d (body: %q)",
			length, len(arr), string(testCtx.LastBody))
	}
	return nil
}

func (testCtx *TestContext) theResponseShouldBeAnEmptyJSONArray() error {
	// The wire form matters here: empty collections must encode as [].
	if strings.TrimSpace(string(testCtx.LastBody)) != "[]" {
		return fmt.Errorf("expected literal [], got %q", string(testCtx.LastBody))
	}
	return nil
}

func (testCtx *TestContext) theJSONArrayShouldContain(value string) error {
	arr, err := testCtx.decodeArray()
	if err != nil {
		return err
	}
	for _, raw := range arr {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s == value {
			return nil
		}
	}
	return fmt.Errorf("array %q does not contain %q", string(testCtx.LastBody), value)
}

func (testCtx *TestContext) elementOfTheJSONArrayShouldBe(index int, value string) error {
	arr, err := testCtx.decodeArray()
	if err != nil {
		return err
	}
	if index >= len(arr) {
		return fmt.Errorf("array has %d elements, wanted index %d", len(arr), index)
	}
	var s string
	if err := json.Unmarshal(arr[index], &s); err != nil {
		return fmt.Errorf("element %d is not a string: %w", index, err)
	}
	if s != value {
		return fmt.Errorf("expected element %d to be %q, got %q", index, value, s)
	}
	return nil
}

func (testCtx *TestContext) elementShouldHaveFieldEqual(index int, field string, value int) error {
	arr, err := testCtx.decodeArray()
	if err != nil {
		return err
	}
	if index >= len(arr) {
		return fmt.Errorf("array has %d elements, wanted index %d", len(arr), index)
	}
	var obj map[string]any
	if err := json.Unmarshal(arr[index], &obj); err != nil {
		return fmt.Errorf("element %d is not an object: %w", index, err)
	}
	got, ok := obj[field]
	if !ok {
		return fmt.Errorf("element %d has no field %q", index, field)
	}
	num, ok := got.(float64)
	if !ok || int(num) != value {
		return fmt.Errorf("expected element %d field %q to be %d, got %v", index, field, value, got)
	}
	return nil
}
