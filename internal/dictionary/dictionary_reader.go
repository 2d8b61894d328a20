// Package dictionary looks words up in WordsAPI and fills in missing pronunciations.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/wordexam/internal/dictionary/rapidapi"
)

// ErrWordNotFound is returned when the dictionary has no entry for a word.
var ErrWordNotFound = errors.New("word not found in dictionary")

type Config struct {
	RapidAPIHost string
	RapidAPIKey  string
}

type Reader struct {
	config    Config
	client    *resty.Client
	fileCache *FileCache
}

func NewReader(cacheDirectory string, config Config) *Reader {
	return &Reader{
		config:    config,
		client:    resty.New().SetBaseURL("https://" + config.RapidAPIHost),
		fileCache: NewFileCache(cacheDirectory),
	}
}

// WithBaseURL points the reader at another server.
func (r *Reader) WithBaseURL(baseURL string) *Reader {
	r.client.SetBaseURL(baseURL)
	return r
}

func (r *Reader) lookupAPI(ctx context.Context, word string) ([]byte, error) {
	res, err := r.client.R().
		SetContext(ctx).
		SetHeader("x-rapidapi-host", r.config.RapidAPIHost).
		SetHeader("x-rapidapi-key", r.config.RapidAPIKey).
		Get("/words/" + url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	switch res.StatusCode() {
	case http.StatusOK:
		return res.Body(), nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", word, ErrWordNotFound)
	default:
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
}

// Lookup returns the entry of word, from the cache when it was looked up before.
func (r *Reader) Lookup(ctx context.Context, word string) (rapidapi.Response, error) {
	var resp rapidapi.Response
	contents, err := r.fileCache.cache(word, func() ([]byte, error) {
		return r.lookupAPI(ctx, word)
	})
	if err != nil {
		return resp, fmt.Errorf("r.fileCache.cache > %w", err)
	}
	if err := json.Unmarshal(contents, &resp); err != nil {
		return resp, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return resp, nil
}
