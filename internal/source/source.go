package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"quizdeck/internal/question"
)

// ErrDataLoad wraps every failure to obtain the question source text.
var ErrDataLoad = errors.New("failed to load questions")

// ErrEmptyQuestionSet means the source parsed to zero usable records.
var ErrEmptyQuestionSet = fmt.Errorf("%w: no usable questions", ErrDataLoad)

// DefaultTimeout bounds a remote fetch when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a remote or local source is read.
const maxBodyBytes = 16 << 20

// Options configures a Loader.
type Options struct {
	Delimiter rune
	Timeout   time.Duration
	Client    *http.Client
}

// Loader fetches a question source from a file path or an http(s) URL.
type Loader struct {
	location string
	opts     Options
}

// New returns a loader for location.
func New(location string, opts Options) *Loader {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	return &Loader{location: strings.TrimSpace(location), opts: opts}
}

// Location returns the configured source location.
func (l *Loader) Location() string {
	return l.location
}

// Load fetches and parses the source. When the source parses but yields no
// records, the set is returned together with ErrEmptyQuestionSet.
func (l *Loader) Load(ctx context.Context) (question.Set, error) {
	data, err := l.Fetch(ctx)
	if err != nil {
		return question.Set{}, err
	}
	set, err := question.Decode(data, question.FormatFromName(l.location), question.WithDelimiter(l.opts.Delimiter))
	if err != nil {
		return question.Set{}, fmt.Errorf("%w: %s: %w", ErrDataLoad, l.location, err)
	}
	if len(set.Records) == 0 {
		return set, ErrEmptyQuestionSet
	}
	return set, nil
}

// Fetch returns the raw source bytes.
func (l *Loader) Fetch(ctx context.Context) ([]byte, error) {
	if l.location == "" {
		return nil, fmt.Errorf("%w: no source configured", ErrDataLoad)
	}
	if IsRemote(l.location) {
		return l.fetchRemote(ctx)
	}
	return l.readFile()
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (l *Loader) fetchRemote(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrDataLoad, err)
	}
	resp, err := l.opts.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", ErrDataLoad, l.location, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrDataLoad, err)
	}
	return data, nil
}

func (l *Loader) readFile() ([]byte, error) {
	file, err := os.Open(l.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataLoad, err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrDataLoad, l.location, err)
	}
	return data, nil
}
