package registry

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax is returned for lines that are neither comments, section headers nor key = value pairs.
	ErrSyntax = errors.New("syntax error")
	// ErrNesting is returned when a section header skips a nesting level.
	ErrNesting = errors.New("section nested too deep")
	// ErrDuplicate is returned for a section or key defined twice in the same scope.
	ErrDuplicate = errors.New("duplicate definition")
)

// Section is a scope of a registry file: its keys and nested sections.
type Section struct {
	Values   map[string]string
	Sections map[string]*Section
}

func newSection() *Section {
	return &Section{
		Values:   make(map[string]string),
		Sections: make(map[string]*Section),
	}
}

// Parse parses the ConfigObj subset used by projects.conf: key = value pairs,
// # comments, quoted values and [section] headers nested by bracket depth.
func Parse(data []byte) (*Section, error) {
	root := newSection()
	stack := []*Section{root}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var err error

		if strings.HasPrefix(line, "[") {
			stack, err = openSection(stack, line)
		} else {
			err = setValue(stack[len(stack)-1], line)
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	return root, nil
}

func openSection(stack []*Section, line string) ([]*Section, error) {
	line = stripComment(line)

	depth := len(line) - len(strings.TrimLeft(line, "["))
	closing := len(line) - len(strings.TrimRight(line, "]"))

	if depth != closing || len(line) <= 2*depth {
		return nil, fmt.Errorf("%w: malformed section header %q", ErrSyntax, line)
	}

	if depth > len(stack) {
		return nil, fmt.Errorf("%w: %q", ErrNesting, line)
	}

	name := unquote(strings.TrimSpace(line[depth : len(line)-depth]))
	if name == "" {
		return nil, fmt.Errorf("%w: empty section name", ErrSyntax)
	}

	parent := stack[depth-1]
	if _, exists := parent.Sections[name]; exists {
		return nil, fmt.Errorf("%w: section %q", ErrDuplicate, name)
	}

	child := newSection()
	parent.Sections[name] = child

	return append(stack[:depth], child), nil
}

func setValue(section *Section, line string) error {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return fmt.Errorf("%w: expected key = value, got %q", ErrSyntax, line)
	}

	key = unquote(strings.TrimSpace(key))
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrSyntax)
	}

	if _, exists := section.Values[key]; exists {
		return fmt.Errorf("%w: key %q", ErrDuplicate, key)
	}

	section.Values[key] = unquote(strings.TrimSpace(stripComment(value)))

	return nil
}

// stripComment drops a trailing # comment that is not inside quotes.
func stripComment(s string) string {
	var quote rune

	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '#':
			return strings.TrimSpace(s[:i])
		}
	}

	return s
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}
