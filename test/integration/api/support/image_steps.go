package support

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"

	"github.com/cucumber/godog"
)

// RegisterImageSteps registers step definitions for image requests.
func (testCtx *TestContext) RegisterImageSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I request an image of size (\d+)x(\d+)$`, testCtx.iRequestAnImageOfSize)
	sc.Step(`^I request "([^"]*)"$`, testCtx.iRequestPath)
	sc.Step(`^I request "([^"]*)" with referrer "([^"]*)"$`, testCtx.iRequestPathWithReferrer)
	sc.Step(`^I request "([^"]*)" (\d+) times$`, testCtx.iRequestPathTimes)

	sc.Step(`^the response status should be (\d+)$`, testCtx.theResponseStatusShouldBe)
	sc.Step(`^the response should be a PNG image of size (\d+)x(\d+)$`, testCtx.theResponseShouldBeAPNGImageOfSize)
	sc.Step(`^the response body should be empty$`, testCtx.theResponseBodyShouldBeEmpty)
}

func (testCtx *TestContext) iRequestAnImageOfSize(width, height int) error {
	return testCtx.do(http.MethodGet, fmt.Sprintf("/img/%d/%d", width, height), nil)
}

func (testCtx *TestContext) iRequestPath(path string) error {
	return testCtx.do(http.MethodGet, path, nil)
}

func (testCtx *TestContext) iRequestPathWithReferrer(path, referrer string) error {
	return testCtx.do(http.MethodGet, path, map[string]string{"Referer": referrer})
}

func (testCtx *TestContext) iRequestPathTimes(path string, times int) error {
	for range times {
		if err := testCtx.do(http.MethodGet, path, nil); err != nil {
			return err
		}
	}
	return nil
}

func (testCtx *TestContext) theResponseStatusShouldBe(status int) error {
	if testCtx.LastStatusCode != status {
		return fmt.Errorf("expected status %d, got %d (body: %q)",
			status, testCtx.LastStatusCode, string(testCtx.LastBody))
	}
	return nil
}

func (testCtx *TestContext) theResponseShouldBeAPNGImageOfSize(width, height int) error {
	if ct := testCtx.LastHeaders.Get("Content-Type"); ct != "image/png" {
		return fmt.Errorf("expected Content-Type image/png, got %q", ct)
	}

	img, err := png.Decode(bytes.NewReader(testCtx.LastBody))
	if err != nil {
		return fmt.Errorf("response is not a valid PNG: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		return fmt.Errorf("expected %dx%d image, got %dx%d", width, height, bounds.Dx(), bounds.Dy())
	}
	return nil
}

func (testCtx *TestContext) theResponseBodyShouldBeEmpty() error {
	if len(testCtx.LastBody) != 0 {
		return fmt.Errorf("expected empty body, got %q", string(testCtx.LastBody))
	}
	return nil
}
