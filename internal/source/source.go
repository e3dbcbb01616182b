// Package source reads document text from files, stdin, the system clipboard
// and spreadsheets.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/kycheck/internal/common"
	"github.com/Veraticus/kycheck/internal/config"
)

// ErrInputCancelled is returned when a read is abandoned because the context ended.
var ErrInputCancelled = errors.New("input canceled")

// Stdin is the path that selects standard input.
const Stdin = "-"

// ClipboardName is the source name reported for clipboard input.
const ClipboardName = "clipboard"

// Clipboard is the subset of the system clipboard kycheck uses.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard talks to the OS clipboard.
type SystemClipboard struct{}

// ReadAll returns the clipboard text.
func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("%w: no clipboard utility available", common.ErrUnsupportedInput)
	}
	return clipboard.ReadAll()
}

// WriteAll replaces the clipboard text.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility available", common.ErrUnsupportedInput)
	}
	return clipboard.WriteAll(text)
}

// Reader resolves input names to document text.
type Reader struct {
	Stdin     io.Reader
	Clipboard Clipboard
}

// NewReader returns a reader over stdin and clip. A nil clip uses the OS
// clipboard.
func NewReader(stdin io.Reader, clip Clipboard) *Reader {
	if clip == nil {
		clip = SystemClipboard{}
	}
	return &Reader{Stdin: stdin, Clipboard: clip}
}

// Read returns the text behind name: "-" or "" reads stdin, a .xlsx file is
// converted to tab-delimited text and anything else is read as a text file.
// Reading stdin stops waiting when ctx ends.
func (r *Reader) Read(ctx context.Context, name string) (string, error) {
	if name == "" || name == Stdin {
		data, err := readAll(ctx, r.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	path := config.ExpandPath(name)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadWorkbook(path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // Reading the file the user named is the point
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

// readAll reads r to EOF in a goroutine so a blocked terminal read does not
// hold up cancellation. The goroutine itself finishes only when the read does.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	type result struct {
		err  error
		data []byte
	}
	resultCh := make(chan result, 1)

	go func() {
		data, err := io.ReadAll(r)
		resultCh <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ErrInputCancelled
	case res := <-resultCh:
		return res.data, res.err
	}
}

// ReadClipboard returns the clipboard contents, failing when they are blank.
func (r *Reader) ReadClipboard() (string, error) {
	text, err := r.Clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("clipboard: %w", common.ErrEmptyDocument)
	}
	return text, nil
}

// ReadWorkbook converts the first sheet of a workbook to tab-delimited text,
// one line per row, so it can be read as a tabular dump.
func ReadWorkbook(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			common.LogDebug("Failed to close workbook", common.Fields{"path": path, "error": cerr.Error()})
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: workbook %s has no sheets", common.ErrUnsupportedInput, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	common.LogDebug("Read workbook", common.Fields{"path": path, "sheet": sheets[0], "rows": len(rows)})

	return RowsToText(rows), nil
}

// RowsToText joins cells with tabs and rows with newlines. Rows with no
// content are dropped.
func RowsToText(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		line := strings.Join(row, "\t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
