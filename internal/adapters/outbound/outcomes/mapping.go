package outcomes

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mutscore/mutscore/internal/domain"
	"gopkg.in/yaml.v3"
)

// MappingParser implements domain.CountsParser. It accepts YAML, JSON and the
// key=value lines written to $GITHUB_OUTPUT.
type MappingParser struct{}

func NewMappingParser() *MappingParser {
	return &MappingParser{}
}

func (p *MappingParser) ParseFile(path string) (domain.CountsMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.CountsMapping{}, fmt.Errorf("reading counts file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return domain.CountsMapping{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a counts mapping. Unknown keys and negative values are errors.
func Parse(data []byte) (domain.CountsMapping, error) {
	var raw map[string]int
	var err error
	if isKeyValue(string(data)) {
		raw, err = parseKeyValue(string(data))
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return domain.CountsMapping{}, err
	}
	return fromMap(raw)
}

func fromMap(raw map[string]int) (domain.CountsMapping, error) {
	var m domain.CountsMapping
	for k, v := range raw {
		if v < 0 {
			return domain.CountsMapping{}, &domain.CountError{Key: k, Value: v}
		}
		v := v
		switch k {
		case "caught":
			m.Caught = &v
		case "missed":
			m.Missed = &v
		case "master_caught":
			m.MasterCaught = &v
		case "master_missed":
			m.MasterMissed = &v
		case "feature_caught":
			m.FeatureCaught = &v
		case "feature_missed":
			m.FeatureMissed = &v
		default:
			return domain.CountsMapping{}, fmt.Errorf("unknown key %q", k)
		}
	}
	return m, nil
}

// isKeyValue reports whether every non-blank line looks like key=value.
func isKeyValue(s string) bool {
	found := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, "=") || strings.ContainsAny(line, ":{") {
			return false
		}
		found = true
	}
	return found
}

func parseKeyValue(s string) (map[string]int, error) {
	raw := make(map[string]int)
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		k, v, _ := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("value of %q is not an integer: %w", k, err)
		}
		raw[k] = n
	}
	return raw, sc.Err()
}
