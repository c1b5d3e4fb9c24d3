package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/myagri/pkg/core"
)

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse reads a record from r. The ID may be empty; the repository
	// derives it from the filename.
	Parse(r io.Reader) (core.Record, error)
	// Serialize converts the record to bytes.
	Serialize(rec core.Record) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers, keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".md":   MarkdownSerializer{},
		".json": JSONSerializer{},
		".yaml": YAMLSerializer{},
		".yml":  YAMLSerializer{},
	}
}

// --- JSON Serializer ---

// JSONSerializer stores the whole record as a JSON object.
type JSONSerializer struct{}

func (JSONSerializer) Parse(r io.Reader) (core.Record, error) {
	var rec core.Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return core.Record{}, fmt.Errorf("invalid json: %w", err)
	}
	return rec, nil
}

func (JSONSerializer) Serialize(rec core.Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// --- YAML Serializer ---

// YAMLSerializer stores the whole record as a YAML mapping.
type YAMLSerializer struct{}

func (YAMLSerializer) Parse(r io.Reader) (core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Record{}, err
	}
	var rec core.Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return core.Record{}, fmt.Errorf("invalid yaml: %w", err)
	}
	return rec, nil
}

func (YAMLSerializer) Serialize(rec core.Record) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(rec); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- Markdown Serializer ---

// frontmatter is the record minus its body, which becomes the document content.
type frontmatter struct {
	ID       string        `yaml:"id,omitempty"`
	Kind     core.Kind     `yaml:"kind,omitempty"`
	Title    string        `yaml:"title"`
	Tags     []string      `yaml:"tags,omitempty"`
	Category core.Category `yaml:"category,omitempty"`
	Status   core.Status   `yaml:"status,omitempty"`
	Priority core.Priority `yaml:"priority,omitempty"`
	Date     string        `yaml:"date,omitempty"`
	URL      string        `yaml:"url,omitempty"`
}

// MarkdownSerializer stores records as YAML frontmatter followed by the body.
type MarkdownSerializer struct{}

func (MarkdownSerializer) Parse(r io.Reader) (core.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Record{}, err
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		// Plain markdown: everything is body.
		return core.Record{Body: strings.TrimSpace(text)}, nil
	}

	rest := "\n" + text[len("---\n"):]
	parts := strings.SplitN(rest, "\n---", 2)
	if len(parts) != 2 {
		return core.Record{}, fmt.Errorf("unterminated frontmatter")
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(parts[0]), &fm); err != nil {
		return core.Record{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	body := strings.TrimPrefix(parts[1], "\n")
	return core.Record{
		ID:       fm.ID,
		Kind:     fm.Kind,
		Title:    fm.Title,
		Body:     strings.TrimSuffix(body, "\n"),
		Tags:     fm.Tags,
		Category: fm.Category,
		Status:   fm.Status,
		Priority: fm.Priority,
		Date:     fm.Date,
		URL:      fm.URL,
	}, nil
}

func (MarkdownSerializer) Serialize(rec core.Record) ([]byte, error) {
	fm := frontmatter{
		ID:       rec.ID,
		Kind:     rec.Kind,
		Title:    rec.Title,
		Tags:     rec.Tags,
		Category: rec.Category,
		Status:   rec.Status,
		Priority: rec.Priority,
		Date:     rec.Date,
		URL:      rec.URL,
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(fm); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	if rec.Body != "" {
		buf.WriteString(rec.Body)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}
