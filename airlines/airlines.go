// Package airlines maps two-letter carrier codes to airline names.
//
// The table is read from a tab-separated file with one "<airline name>\t<code>" pair per line.
// A default table is compiled into the binary.
package airlines

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed airlinecodes.txt
var defaultCodes string

var ErrUnknownCarrier = errors.New("unknown carrier code")

// UnknownCarrierError names the first code Resolve could not find.
type UnknownCarrierError struct {
	Code string
}

func (e *UnknownCarrierError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownCarrier, e.Code)
}

func (e *UnknownCarrierError) Unwrap() error { return ErrUnknownCarrier }

// Table is a read-only carrier code lookup. It is safe for concurrent use once loaded.
type Table struct {
	names map[string]string // code -> airline name
}

// Load reads a table. Blank lines are skipped; the code is whatever follows the last tab.
func Load(r io.Reader) (*Table, error) {
	t := &Table{names: map[string]string{}}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		i := strings.LastIndex(line, "\t")
		if i < 0 {
			return nil, fmt.Errorf("airline codes line %d: missing tab separator", lineNo)
		}
		name, code := line[:i], strings.TrimSpace(line[i+1:])
		if code == "" {
			return nil, fmt.Errorf("airline codes line %d: empty code", lineNo)
		}
		t.names[code] = name
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read airline codes: %w", err)
	}
	return t, nil
}

func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open airline codes: %w", err)
	}
	defer f.Close()
	return Load(f)
}

var loadDefault = sync.OnceValues(func() (*Table, error) {
	return Load(strings.NewReader(defaultCodes))
})

// Default returns the compiled-in table.
func Default() (*Table, error) {
	return loadDefault()
}

func (t *Table) Len() int { return len(t.names) }

// Name looks up one carrier code.
func (t *Table) Name(code string) (string, bool) {
	name, ok := t.names[code]
	return name, ok
}

// Resolve maps every code to its airline name, failing on the first code the table lacks.
func (t *Table) Resolve(codes []string) ([]string, error) {
	names := make([]string, 0, len(codes))
	for _, code := range codes {
		name, ok := t.names[code]
		if !ok {
			return nil, &UnknownCarrierError{Code: code}
		}
		names = append(names, name)
	}
	return names, nil
}
