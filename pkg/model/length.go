package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const autoKeyword = "auto"

// Length is a pixel dimension that may also be the keyword "auto".
type Length struct {
	Value float64
	Auto  bool
}

// Px returns a fixed pixel length.
func Px(v float64) Length {
	return Length{Value: v}
}

// AutoLength returns a length sized by its content.
func AutoLength() Length {
	return Length{Auto: true}
}

// Fixed reports whether the length resolves to a positive pixel value.
func (l Length) Fixed() bool {
	return !l.Auto && l.Value > 0
}

// String renders the length the way template documents spell it.
func (l Length) String() string {
	if l.Auto {
		return autoKeyword
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64)
}

// MarshalJSON encodes auto lengths as the string "auto" and others as numbers.
func (l Length) MarshalJSON() ([]byte, error) {
	if l.Auto {
		return json.Marshal(autoKeyword)
	}
	return json.Marshal(l.Value)
}

// UnmarshalJSON accepts a number, a numeric string, "auto" or null.
func (l *Length) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*l = AutoLength()
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		return l.parse(raw)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("model: invalid length %s: %w", trimmed, err)
	}
	*l = Px(v)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (l Length) MarshalYAML() (any, error) {
	if l.Auto {
		return autoKeyword, nil
	}
	return l.Value, nil
}

// UnmarshalYAML accepts the same spellings as UnmarshalJSON.
func (l *Length) UnmarshalYAML(node *yaml.Node) error {
	if node == nil || node.Tag == "!!null" {
		*l = AutoLength()
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("model: line %d: length must be a scalar", node.Line)
	}
	if err := l.parse(node.Value); err != nil {
		return fmt.Errorf("model: line %d: %w", node.Line, err)
	}
	return nil
}

func (l *Length) parse(raw string) error {
	value := strings.TrimSpace(strings.ToLower(raw))
	if value == "" || value == autoKeyword {
		*l = AutoLength()
		return nil
	}
	value = strings.TrimSuffix(value, "px")
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid length %q", raw)
	}
	*l = Px(v)
	return nil
}
