package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a question source.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Document is the structured (YAML or JSON) form of a question set.
type Document struct {
	Version   int                `json:"version" yaml:"version"`
	Questions []DocumentQuestion `json:"questions" yaml:"questions"`
}

// DocumentQuestion is one entry of a structured question set.
type DocumentQuestion struct {
	Question string            `json:"question" yaml:"question"`
	Options  map[string]string `json:"options" yaml:"options"`
	Answer   string            `json:"answer" yaml:"answer"`
}

// FormatFromName picks a format from a file name or URL path. Anything that is
// not YAML or JSON is read as delimited text.
func FormatFromName(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yml", ".yaml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// Decode parses a question source in the given format. Delimited text is
// parsed leniently; structured documents are validated strictly.
func Decode(data []byte, format Format, opts ...Option) (Set, error) {
	switch format {
	case FormatYAML:
		doc, err := parseYAMLDocument(data)
		if err != nil {
			return Set{}, err
		}
		return documentSet(doc)
	case FormatJSON:
		doc, err := parseJSONDocument(data)
		if err != nil {
			return Set{}, err
		}
		return documentSet(doc)
	default:
		return ParseReader(bytes.NewReader(data), opts...)
	}
}

func parseJSONDocument(data []byte) (Document, error) {
	var doc Document
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Document{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Document{}, fmt.Errorf("parse json: %w", err)
	}
	return doc, nil
}

func parseYAMLDocument(data []byte) (Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Document{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Document{}, fmt.Errorf("parse yaml: %w", err)
	}
	return doc, nil
}

func documentSet(doc Document) (Set, error) {
	records, err := NormalizeDocument(doc)
	if err != nil {
		return Set{}, err
	}
	return Set{
		Records: records,
		Report:  Report{HeaderColumns: MinFields, DataRows: len(records)},
	}, nil
}
