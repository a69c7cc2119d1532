package notebook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CellType is the kind of a notebook cell.
type CellType string

// Cell kinds.
const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
	CellRaw      CellType = "raw"
)

// OutputType is the kind of a code cell output.
type OutputType string

// Output kinds.
const (
	OutputStream        OutputType = "stream"
	OutputExecuteResult OutputType = "execute_result"
	OutputDisplayData   OutputType = "display_data"
	OutputError         OutputType = "error"
)

// DefaultLanguage is used for code cells when the notebook does not name its
// kernel language.
const DefaultLanguage = "python"

// Notebook is a parsed .ipynb document.
type Notebook struct {
	Cells         []Cell   `json:"cells"`
	Metadata      Metadata `json:"metadata"`
	NBFormat      int      `json:"nbformat,omitempty"`
	NBFormatMinor int      `json:"nbformat_minor,omitempty"`
}

// Metadata holds the notebook-level metadata fields marrow reads.
type Metadata struct {
	KernelSpec   *KernelSpec   `json:"kernelspec,omitempty"`
	LanguageInfo *LanguageInfo `json:"language_info,omitempty"`
}

// KernelSpec describes the kernel a notebook was written for.
type KernelSpec struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Language    string `json:"language,omitempty"`
}

// LanguageInfo describes the kernel language.
type LanguageInfo struct {
	Name string `json:"name,omitempty"`
}

// Cell is one notebook cell.
type Cell struct {
	Type           CellType        `json:"cell_type"`
	Source         MultilineString `json:"source"`
	Outputs        []Output        `json:"outputs,omitempty"`
	ExecutionCount *int            `json:"execution_count,omitempty"`
}

// Output is one output of a code cell.
type Output struct {
	Type      OutputType                 `json:"output_type"`
	Name      string                     `json:"name,omitempty"`
	Text      MultilineString            `json:"text,omitempty"`
	Data      map[string]json.RawMessage `json:"data,omitempty"`
	EName     string                     `json:"ename,omitempty"`
	EValue    string                     `json:"evalue,omitempty"`
	Traceback []string                   `json:"traceback,omitempty"`
}

// MultilineString is a notebook text field, stored either as a single string
// or as an array of strings to concatenate.
type MultilineString string

// UnmarshalJSON accepts both encodings.
func (m *MultilineString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = MultilineString(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	*m = MultilineString(strings.Join(parts, ""))
	return nil
}

// String returns the concatenated text.
func (m MultilineString) String() string {
	return string(m)
}

// Parse decodes a notebook. The only schema requirement beyond valid JSON is
// a cells array.
func Parse(data []byte) (*Notebook, error) {
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if nb.Cells == nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, ErrNoCells)
	}
	return &nb, nil
}

// Language returns the kernel language used to tag code cells.
func (nb *Notebook) Language() string {
	if li := nb.Metadata.LanguageInfo; li != nil && li.Name != "" {
		return li.Name
	}
	if ks := nb.Metadata.KernelSpec; ks != nil && ks.Language != "" {
		return ks.Language
	}
	return DefaultLanguage
}

// DataString returns the payload for mime when it is textual. Payloads that
// are JSON objects, such as widget state, report false.
func (o *Output) DataString(mime string) (string, bool) {
	raw, ok := o.Data[mime]
	if !ok {
		return "", false
	}
	var m MultilineString
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", false
	}
	return m.String(), true
}
