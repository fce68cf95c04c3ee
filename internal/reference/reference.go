// Package reference loads letter-frequency reference tables.
package reference

import (
	"bufio"
	"bytes"
	_ "embed" // Built-in English table.
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/verte-zerg/decaesar/internal/freq"
)

//go:embed english.txt
var englishTable []byte

var english = mustParse(englishTable)

// English returns the built-in English letter distribution.
func English() freq.Distribution {
	return english
}

// Resolve returns the table stored at path, or the built-in English table when path is empty.
func Resolve(path string) (freq.Distribution, error) {
	if strings.TrimSpace(path) == "" {
		return English(), nil
	}
	return LoadFile(path)
}

// LoadFile reads one percentage per line, 'a' first, from the provided file path.
func LoadFile(path string) (freq.Distribution, error) {
	file, err := os.Open(path)
	if err != nil {
		return freq.Distribution{}, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only table.
			_ = cerr
		}
	}()
	d, err := Parse(file)
	if err != nil {
		return freq.Distribution{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse reads a distribution from r. Blank lines and lines starting with '#' are skipped.
func Parse(r io.Reader) (freq.Distribution, error) {
	var values []float64
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return freq.Distribution{}, fmt.Errorf("line %d: invalid frequency %q", lineNo, line)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return freq.Distribution{}, err
	}
	if len(values) == 0 {
		return freq.Distribution{}, fmt.Errorf("distribution is empty")
	}
	return freq.NewDistribution(values)
}

func mustParse(data []byte) freq.Distribution {
	d, err := Parse(bytes.NewReader(data))
	if err != nil {
		panic(fmt.Sprintf("built-in distribution: %v", err))
	}
	return d
}
