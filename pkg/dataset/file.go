package dataset

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// File represents a file containing the indicator table. This is typically
// a table of data in Excel or CSV format, either downloaded or read from
// disk, held base64-encoded so the snapshot database stays a single JSON
// document.
type File struct {
	URL           string
	Title         string
	ContentBase64 string
}

// DownloadContent fetches the file body and stores it on the File.
func (f *File) DownloadContent(fetcher *Fetcher) error {
	data, err := fetcher.Get(f.URL)
	if err != nil {
		return err
	}
	f.ContentBase64 = base64.StdEncoding.EncodeToString(data)
	return nil
}

// ReadContent loads the file body from a local path instead.
func (f *File) ReadContent(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if f.URL == "" {
		f.URL = path
	}
	if f.Title == "" {
		f.Title = strings.TrimSuffix(path[strings.LastIndex(path, "/")+1:], extOf(path))
	}
	f.ContentBase64 = base64.StdEncoding.EncodeToString(data)
	return nil
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}
