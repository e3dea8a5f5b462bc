package config

// This file implements Load: read the XML document, then resolve every
// field through a single defaulting pass over the schema table. Absent
// optional elements take their declared default; they never abort parsing.

import (
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/backmassage/vectorgen/internal/paths"
)

// document wraps the parsed XML with tag-name lookup semantics: the first
// element with a given name anywhere in the tree wins, and an element with
// no text counts as absent.
type document struct {
	doc *etree.Document
}

func (d document) lookup(name string) (string, bool) {
	el := d.doc.FindElement("//" + name)
	if el == nil {
		return "", false
	}
	v := strings.TrimSpace(el.Text())
	return v, v != ""
}

// lookupInputFiles accepts either a plain comma-separated list or a set of
// <file> children, which are joined with commas.
func (d document) lookupInputFiles() (string, bool) {
	el := d.doc.FindElement("//input_files")
	if el == nil {
		return "", false
	}
	if files := el.SelectElements("file"); len(files) > 0 {
		names := make([]string, 0, len(files))
		for _, f := range files {
			if v := strings.TrimSpace(f.Text()); v != "" {
				names = append(names, v)
			}
		}
		joined := strings.Join(names, ",")
		return joined, joined != ""
	}
	v := strings.TrimSpace(el.Text())
	return v, v != ""
}

// fieldSpec is one row of the schema table. read overrides the default
// tag-name lookup; def supplies the value for an absent optional element and
// may depend on fields resolved earlier in the table.
type fieldSpec struct {
	name     string
	required bool
	read     func(d document) (string, bool)
	def      func(c *Configuration) string
	assign   func(c *Configuration, v string) error
}

func constant(v string) func(*Configuration) string {
	return func(*Configuration) string { return v }
}

func dirField(dst func(c *Configuration) *string) func(c *Configuration, v string) error {
	return func(c *Configuration, v string) error {
		if v == "" {
			*dst(c) = ""
			return nil
		}
		p, err := paths.Normalize(v)
		if err != nil {
			return err
		}
		*dst(c) = p
		return nil
	}
}

func stringField(dst func(c *Configuration) *string) func(c *Configuration, v string) error {
	return func(c *Configuration, v string) error {
		*dst(c) = v
		return nil
	}
}

func extentsField(dst func(c *Configuration) *string) func(c *Configuration, v string) error {
	return func(c *Configuration, v string) error {
		if n := len(strings.Split(v, ",")); n != extentComponentCount {
			return fmt.Errorf("needs %d comma-separated values, got %d", extentComponentCount, n)
		}
		*dst(c) = v
		return nil
	}
}

// schema is evaluated in order. Rows that default from other fields must
// come after them: working_dir before logfile_dir, outsize before
// target_x/target_y, target_epsg and extents before target_extents.
var schema = []fieldSpec{
	{name: "parameter_name", required: true,
		assign: stringField(func(c *Configuration) *string { return &c.ParameterName })},
	{name: "date_of_data", required: true,
		assign: stringField(func(c *Configuration) *string { return &c.DateOfData })},
	{name: "time_of_data", def: constant(""),
		assign: stringField(func(c *Configuration) *string { return &c.TimeOfData })},
	{name: "input_dir", def: constant(""),
		assign: dirField(func(c *Configuration) *string { return &c.InputDir })},
	{name: "output_dir", required: true,
		assign: dirField(func(c *Configuration) *string { return &c.OutputDir })},
	{name: "working_dir", def: constant(DefaultWorkingDir),
		assign: dirField(func(c *Configuration) *string { return &c.WorkingDir })},
	{name: "logfile_dir", def: func(c *Configuration) string { return c.WorkingDir },
		assign: dirField(func(c *Configuration) *string { return &c.LogfileDir })},
	{name: "output_name", def: constant(DefaultOutputName),
		assign: stringField(func(c *Configuration) *string { return &c.OutputName })},
	{name: "output_format", required: true,
		assign: func(c *Configuration, v string) error {
			c.OutputFormat = OutputFormat(strings.ToLower(v))
			return nil
		}},
	{name: "outsize", def: constant(""),
		assign: func(c *Configuration, v string) error {
			if v == "" {
				return nil
			}
			x, y, ok := strings.Cut(v, " ")
			if !ok || strings.Contains(y, " ") {
				return fmt.Errorf("must be two values separated by a single space, got %q", v)
			}
			c.Outsize, c.TargetX, c.TargetY = v, x, y
			return nil
		}},
	{name: "target_x", def: constant(""),
		assign: func(c *Configuration, v string) error {
			if c.Outsize == "" {
				c.TargetX = v
			}
			return nil
		}},
	{name: "target_y", def: constant(""),
		assign: func(c *Configuration, v string) error {
			if c.Outsize == "" {
				c.TargetY = v
			}
			return nil
		}},
	{name: "target_epsg", def: constant(DefaultEPSG),
		assign: func(c *Configuration, v string) error {
			c.TargetEPSG = normalizeEPSG(v)
			return nil
		}},
	{name: "source_epsg", def: constant(DefaultEPSG),
		assign: func(c *Configuration, v string) error {
			c.SourceEPSG = normalizeEPSG(v)
			return nil
		}},
	{name: "extents", def: constant(DefaultExtents),
		assign: extentsField(func(c *Configuration) *string { return &c.Extents })},
	{name: "target_extents",
		def: func(c *Configuration) string {
			if c.TargetEPSG == WebMercatorEPSG {
				return WebMercatorExtents
			}
			return c.Extents
		},
		assign: extentsField(func(c *Configuration) *string { return &c.TargetExtents })},
	{name: "input_files", def: constant(""),
		read:   document.lookupInputFiles,
		assign: stringField(func(c *Configuration) *string { return &c.InputFiles })},
}

// Load reads the configuration document at path and returns the resolved
// configuration. It returns a *ReadError when the file cannot be read, a
// *ParseError for malformed XML, missing required elements, or badly shaped
// values, and a *DateFormatError when date_of_data is not 8 characters or a
// present time_of_data is not 6.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse resolves a configuration from raw document bytes. source is
// recorded as Configuration.Source.
func Parse(source string, data []byte) (*Configuration, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Reason: "is not well-formed XML", Err: err}
	}
	if doc.Root() == nil {
		return nil, &ParseError{Reason: "has no root element"}
	}
	d := document{doc: doc}

	c := &Configuration{Source: source}
	for _, f := range schema {
		read := f.read
		if read == nil {
			name := f.name
			read = func(d document) (string, bool) { return d.lookup(name) }
		}
		v, ok := read(d)
		if !ok {
			if f.required {
				return nil, &ParseError{Field: f.name, Reason: "is required"}
			}
			v = f.def(c)
		}
		if err := f.assign(c, v); err != nil {
			return nil, &ParseError{Field: f.name, Err: err}
		}
	}

	if err := c.validateDates(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) validateDates() error {
	if len(c.DateOfData) != dateOfDataLength {
		return &DateFormatError{Field: "date_of_data", Value: c.DateOfData, Layout: "yyyymmdd"}
	}
	if c.TimeOfData != "" && len(c.TimeOfData) != timeOfDataLength {
		return &DateFormatError{Field: "time_of_data", Value: c.TimeOfData, Layout: "HHMMSS"}
	}
	return nil
}
