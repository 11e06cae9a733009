package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BishwajeetPatel/task-glitch/internal/models"
)

// Loader reads the static seed document: a JSON array of task records.
// The source is either a file path or an http(s) URL.
type Loader struct {
	source     string
	httpClient *http.Client
}

func NewLoader(source string) *Loader {
	return &Loader{
		source:     source,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch reads and decodes the seed document. Malformed field types inside a
// record do not fail the decode; only an unreadable source or a document
// that is not a JSON array is an error.
func (l *Loader) Fetch(ctx context.Context) ([]models.RawTask, error) {
	var data []byte
	var err error

	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		data, err = l.fetchURL(ctx)
	} else {
		data, err = os.ReadFile(l.source)
	}
	if err != nil {
		return nil, fmt.Errorf("Error trying to read seed source: %w", err)
	}

	var records []models.RawTask
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("Error trying to decode seed document: %w", err)
	}

	return records, nil
}

func (l *Loader) fetchURL(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed source returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
