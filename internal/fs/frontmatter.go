package fs

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

const byteOrderMark = "\uFEFF"

// Recognized frontmatter keys.
const (
	KeyTitle  = "title"
	KeyWeight = "weight"
	KeyDate   = "date"
)

// Format is a frontmatter encoding together with its marker lines.
type Format struct {
	Name   string
	format *frontmatter.Format
}

var (
	// TOML is frontmatter between "+++" lines.
	TOML = Format{Name: "toml", format: frontmatter.NewFormat("+++", "+++", toml.Unmarshal)}
	// YAML is frontmatter between "---" lines.
	YAML = Format{Name: "yaml", format: frontmatter.NewFormat("---", "---", yaml.Unmarshal)}
)

// ParseFormat resolves a format by name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TOML.Name:
		return TOML, nil
	case YAML.Name:
		return YAML, nil
	default:
		return Format{}, fmt.Errorf("unknown frontmatter format %q", name)
	}
}

// Delimiter returns the marker line that opens and closes the frontmatter.
func (f Format) Delimiter() string { return f.format.Start }

// Metadata holds decoded frontmatter keyed by field name.
type Metadata map[string]Value

// Lookup returns the value stored under key.
func (m Metadata) Lookup(key string) (Value, bool) {
	v, ok := m[key]
	return v, ok
}

// Title returns the title field or an empty string.
func (m Metadata) Title() string {
	title, _ := m[KeyTitle].Str()
	return title
}

// Weight returns the weight field, defaulting to zero.
func (m Metadata) Weight() int {
	weight, _ := m[KeyWeight].Int()
	return weight
}

// Document is a parsed content file.
type Document struct {
	Metadata Metadata
	Body     string
}

// ValidationIssue captures a single frontmatter problem.
type ValidationIssue struct {
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// ValidationResult is a list of validation issues.
type ValidationResult struct {
	Issues []ValidationIssue
}

// IsValid reports whether validation produced no issues.
func (r ValidationResult) IsValid() bool {
	return len(r.Issues) == 0
}

func (r ValidationResult) String() string {
	messages := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		messages = append(messages, issue.Message)
	}
	return strings.Join(messages, "; ")
}

// ValidateMetadata checks the types of the recognized fields.
func ValidateMetadata(m Metadata) ValidationResult {
	result := ValidationResult{}

	if v, ok := m[KeyTitle]; ok && v.Kind() != KindString {
		result.Issues = append(result.Issues, ValidationIssue{
			Field:   KeyTitle,
			Code:    "type",
			Message: fmt.Sprintf("title must be a string, got %s", v.Kind()),
		})
	}
	if v, ok := m[KeyWeight]; ok {
		if _, isInt := v.Int(); !isInt {
			result.Issues = append(result.Issues, ValidationIssue{
				Field:   KeyWeight,
				Code:    "type",
				Message: fmt.Sprintf("weight must be an integer, got %s %q", v.Kind(), v.Text()),
			})
		}
	}
	if v, ok := m[KeyDate]; ok && v.Kind() != KindDate && v.Kind() != KindString {
		result.Issues = append(result.Issues, ValidationIssue{
			Field:   KeyDate,
			Code:    "type",
			Message: fmt.Sprintf("date must be a date, got %s", v.Kind()),
		})
	}

	return result
}

// Parser splits documents and decodes their frontmatter with one Format.
type Parser struct {
	format Format
}

// NewParser returns a parser for the given format.
func NewParser(format Format) *Parser {
	return &Parser{format: format}
}

// Format returns the parser's format.
func (p *Parser) Format() Format { return p.format }

// Parse splits raw into frontmatter and body and decodes the frontmatter.
func (p *Parser) Parse(raw []byte) (Document, error) {
	reader := bufio.NewReader(bytes.NewReader(raw))
	meta, err := p.parseHeader(reader)
	if err != nil {
		return Document{}, err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return Document{}, err
	}
	return Document{Metadata: meta, Body: string(body)}, nil
}

// ReadDocument reads and parses the file at path.
func (p *Parser) ReadDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &FileSystemError{Op: "read", Path: path, Err: err}
	}
	doc, err := p.Parse(raw)
	if err != nil {
		return Document{}, withPath(err, path)
	}
	return doc, nil
}

// ReadMetadata reads only the frontmatter of the file at path and stops at
// the closing marker, so bodies are never loaded.
func (p *Parser) ReadMetadata(path string) (Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &FileSystemError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	meta, err := p.parseHeader(bufio.NewReader(file))
	if err != nil {
		return nil, withPath(err, path)
	}
	return meta, nil
}

func (p *Parser) parseHeader(reader *bufio.Reader) (Metadata, error) {
	block, err := splitFrontmatter(reader, p.format.format.Start, p.format.format.End)
	if err != nil {
		return nil, err
	}

	// Hand the isolated block back to adrg/frontmatter so the format's
	// extraction and unmarshal run on exactly the header lines.
	f := p.format.format
	header := f.Start + "\n" + block + f.End + "\n"
	var decoded map[string]any
	if _, err := frontmatter.MustParse(strings.NewReader(header), &decoded, f); err != nil {
		return nil, &ParseError{
			Reason: fmt.Sprintf("decode %s: %v", p.format.Name, err),
			Err:    fmt.Errorf("%w: %v", ErrFrontmatterInvalid, err),
		}
	}

	meta := make(Metadata, len(decoded))
	for key, raw := range decoded {
		if value, ok := valueOf(raw); ok {
			meta[key] = value
		}
	}
	if result := ValidateMetadata(meta); !result.IsValid() {
		return nil, invalidFrontmatter(result.String())
	}
	return meta, nil
}

// splitFrontmatter consumes the frontmatter block from reader, leaving the
// reader positioned at the first body byte.
func splitFrontmatter(reader *bufio.Reader, start, end string) (string, error) {
	first, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	first = strings.TrimPrefix(first, byteOrderMark)
	if strings.TrimSpace(first) != start {
		return "", missingFrontmatter(fmt.Sprintf("opening %q marker not found", start))
	}
	if errors.Is(err, io.EOF) {
		return "", invalidFrontmatter(fmt.Sprintf("closing %q marker not found", end))
	}

	var block strings.Builder
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if strings.TrimSpace(line) == end {
			return block.String(), nil
		}
		block.WriteString(line)
		if errors.Is(err, io.EOF) {
			return "", invalidFrontmatter(fmt.Sprintf("closing %q marker not found", end))
		}
	}
}

func withPath(err error, path string) error {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		copied := *parseErr
		copied.Path = path
		return &copied
	}
	return &FileSystemError{Op: "read", Path: path, Err: err}
}
