package outcomes

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mutscore/mutscore/internal/domain"
)

const (
	caughtFile   = "caught.txt"
	missedFile   = "missed.txt"
	unviableFile = "unviable.txt"
	timeoutFile  = "timeout.txt"
)

// DirReader implements domain.OutcomeReader for cargo-mutants output
// directories, where every outcome file lists one mutant per line.
type DirReader struct{}

func NewDirReader() *DirReader {
	return &DirReader{}
}

// Read counts the mutants listed in dir. caught.txt and missed.txt are
// required; unviable.txt and timeout.txt count as empty when absent.
func (r *DirReader) Read(dir string) (domain.Outcomes, error) {
	var out domain.Outcomes
	var err error

	if out.Caught, err = countLines(filepath.Join(dir, caughtFile), true); err != nil {
		return domain.Outcomes{}, err
	}
	if out.Missed, err = countLines(filepath.Join(dir, missedFile), true); err != nil {
		return domain.Outcomes{}, err
	}
	if out.Unviable, err = countLines(filepath.Join(dir, unviableFile), false); err != nil {
		return domain.Outcomes{}, err
	}
	if out.Timeout, err = countLines(filepath.Join(dir, timeoutFile), false); err != nil {
		return domain.Outcomes{}, err
	}
	return out, nil
}

// countLines returns the number of non-blank lines in path.
func countLines(path string, required bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if required {
				return 0, fmt.Errorf("%w: %s", domain.ErrOutcomeMissing, path)
			}
			return 0, nil
		}
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}
