// Package update checks the project's GitHub releases for a newer
// version. The check is best-effort: any failure reads as "no update".
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const repo = "malbright/frontpage"

var (
	releaseURL = fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", repo)
	httpClient = &http.Client{Timeout: 5 * time.Second}
)

// Result names the newer release found upstream.
type Result struct {
	LatestVersion string
}

// Check returns the latest release when it differs from currentVersion,
// nil otherwise (including on any network or decode error).
func Check(ctx context.Context, currentVersion string) *Result {
	latest, err := fetchLatest(ctx)
	if err != nil {
		return nil
	}
	if latest == "" || latest == strings.TrimPrefix(currentVersion, "v") {
		return nil
	}
	return &Result{LatestVersion: latest}
}

func fetchLatest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases API returned %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}
