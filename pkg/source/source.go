// Package source reads user-supplied documents from a local path or an http(s) URL.
package source

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single URL download.
const DefaultTimeout = 30 * time.Second

// Document is a fetched file.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// IsURL reports whether input should be downloaded rather than read from disk.
func IsURL(input string) (ok bool) {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	ok = u.Scheme == "http" || u.Scheme == "https"
	return ok
}

// Fetch reads input from disk, or downloads it when input is a URL.
func Fetch(ctx context.Context, input string) (doc Document, err error) {
	if IsURL(input) {
		doc, err = fetchURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch %s", input)
			return doc, err
		}
		return doc, err
	}

	doc, err = fetchFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s", input)
		return doc, err
	}

	return doc, err
}

// Text fetches input as text. HTML pages are reduced to their visible text.
func Text(ctx context.Context, input string) (text string, err error) {
	var doc Document
	doc, err = Fetch(ctx, input)
	if err != nil {
		return text, err
	}

	text = string(doc.Data)
	if strings.Contains(doc.ContentType, "html") {
		text = stripHTML(text)
	}
	text = strings.TrimSpace(text)

	if text == "" {
		err = errors.Errorf("%s has no text content", input)
		return text, err
	}

	return text, err
}

func fetchFile(p string) (doc Document, err error) {
	doc.Name = filepath.Base(p)
	doc.Data, err = os.ReadFile(p)
	if err != nil {
		return doc, err
	}

	if len(doc.Data) == 0 {
		err = errors.New("file is empty")
		return doc, err
	}

	doc.ContentType = http.DetectContentType(doc.Data)
	return doc, err
}

func fetchURL(ctx context.Context, rawURL string) (doc Document, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return doc, err
	}
	req.Header.Set("User-Agent", "portfolio-admin/1.0")

	client := &http.Client{Timeout: DefaultTimeout}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return doc, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return doc, err
	}

	doc.Data, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return doc, err
	}

	if len(doc.Data) == 0 {
		err = errors.New("response body is empty")
		return doc, err
	}

	doc.ContentType = resp.Header.Get("Content-Type")
	if doc.ContentType == "" {
		doc.ContentType = http.DetectContentType(doc.Data)
	}

	doc.Name = path.Base(resp.Request.URL.Path)
	if doc.Name == "/" || doc.Name == "." {
		doc.Name = resp.Request.URL.Host
	}

	return doc, err
}

// stripHTML drops script and style blocks, then every tag.
func stripHTML(html string) (text string) {
	text = removeTagAndContent(html, "script")
	text = removeTagAndContent(text, "style")

	inTag := false
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	text = strings.TrimSpace(b.String())
	return text
}

func removeTagAndContent(html, tag string) (result string) {
	result = html
	openTag := "<" + tag
	closeTag := "</" + tag + ">"

	for {
		start := strings.Index(result, openTag)
		if start == -1 {
			break
		}

		end := strings.Index(result[start:], closeTag)
		if end == -1 {
			break
		}

		end += start + len(closeTag)
		result = result[:start] + result[end:]
	}

	return result
}
