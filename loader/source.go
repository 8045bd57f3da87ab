package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/nathoo/battlecore/types"
)

// maxStatsBody caps how much of a stats response is read.
const maxStatsBody = 4 << 20

// Decode reads a JSON array of {id, name, health, mana, damage} records and
// validates it.
func Decode(r io.Reader, source string) (*Pool, error) {
	var entries []types.StatEntry
	dec := json.NewDecoder(io.LimitReader(r, maxStatsBody))
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding stats from %s: %w", source, err)
	}
	pool := &Pool{Source: source, Entries: entries}
	if err := validate(pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// LoadJSON loads a stats pool from a JSON file.
func LoadJSON(path string) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stats file: %w", err)
	}
	defer f.Close()
	return Decode(f, path)
}

// Fetch retrieves the stats pool from an HTTP endpoint. A nil client uses
// http.DefaultClient; callers set the timeout on the client or the context.
func Fetch(ctx context.Context, client *http.Client, url string) (*Pool, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building stats request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching stats: %s returned %s", url, resp.Status)
	}
	return Decode(resp.Body, url)
}
