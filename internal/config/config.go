// Package config loads the vectorgen XML configuration document into an
// immutable, fully defaulted [Configuration], and binds the CLI options.
package config

import "strings"

// --- Enum types for validated string fields ---

// OutputFormat selects the product written by a run. Only GeoJSON is
// produced; the remaining values are recognized so that configurations
// naming them fail with a clear "no valid input" error instead of a parse
// error.
type OutputFormat string

const (
	FormatGeoJSON OutputFormat = "geojson" // GeoJSON via ogr2ogr (implemented).
	FormatJSON    OutputFormat = "json"    // Selects *json inputs; not a conversion target.
	FormatMRF     OutputFormat = "mrf"     // Rasterized MRF tiles.
	FormatMVT     OutputFormat = "mvt"     // Mapbox vector tiles.
	FormatPNG     OutputFormat = "png"     // Rasterized PNG tiles.
)

// Supported reports whether the conversion runner can produce f.
func (f OutputFormat) Supported() bool {
	return f == FormatGeoJSON
}

// SelectsJSONInputs reports whether directory discovery should be limited
// to *json files for this format.
func (f OutputFormat) SelectsJSONInputs() bool {
	return f == FormatGeoJSON || f == FormatJSON
}

// Fixed defaults applied by the schema table in [Load].
const (
	DefaultWorkingDir    = "/tmp/"
	DefaultOutputName    = "{$parameter_name}%Y%j_.json"
	DefaultEPSG          = "EPSG:4326"
	WebMercatorEPSG      = "EPSG:3857"
	DefaultExtents       = "-180,-90,180,90"
	WebMercatorExtents   = "-20037508.34,-20037508.34,20037508.34,20037508.34"
	ParameterNameToken   = "{$parameter_name}"
	dateOfDataLength     = 8
	timeOfDataLength     = 6
	extentComponentCount = 4
)

// Configuration is the resolved run configuration. It is produced by [Load]
// and never mutated afterwards. Directory fields are absolute and carry a
// trailing separator; optional fields that were absent hold their default
// (or "" where no default exists).
type Configuration struct {
	// Source is the path the document was loaded from.
	Source string

	ParameterName string
	DateOfData    string // yyyymmdd
	TimeOfData    string // HHMMSS or "".

	// Inputs. At least one must be set for a run to collect tiles.
	InputDir   string // "" when unset.
	InputFiles string // Comma-separated; "" when unset.

	OutputDir  string
	WorkingDir string // Default: "/tmp/".
	LogfileDir string // Default: WorkingDir.

	OutputName   string       // Default: "{$parameter_name}%Y%j_.json".
	OutputFormat OutputFormat // Lowercased.

	// Sizing. Outsize ("X Y") overrides TargetX/TargetY when present.
	Outsize string
	TargetX string
	TargetY string

	TargetEPSG    string // Default: "EPSG:4326".
	SourceEPSG    string // Default: "EPSG:4326".
	Extents       string // Default: "-180,-90,180,90".
	TargetExtents string // Default: Extents, or Web-Mercator bounds for EPSG:3857.
}

// HasTime reports whether a sub-daily time_of_data was configured.
func (c *Configuration) HasTime() bool {
	return len(c.TimeOfData) == timeOfDataLength
}

// Field is one labelled configuration value for the run log.
type Field struct {
	Label string
	Value string
}

// Fields returns the configuration in the order it is written to the run
// log. input_files and input_dir are omitted when unset.
func (c *Configuration) Fields() []Field {
	fields := []Field{
		{"parameter_name", c.ParameterName},
		{"date_of_data", c.DateOfData},
		{"time_of_data", c.TimeOfData},
	}
	if c.InputFiles != "" {
		fields = append(fields, Field{"input_files", c.InputFiles})
	}
	if c.InputDir != "" {
		fields = append(fields, Field{"input_dir", c.InputDir})
	}
	return append(fields,
		Field{"output_dir", c.OutputDir},
		Field{"working_dir", c.WorkingDir},
		Field{"logfile_dir", c.LogfileDir},
		Field{"output_name", c.OutputName},
		Field{"output_format", string(c.OutputFormat)},
		Field{"outsize", c.Outsize},
		Field{"target_x", c.TargetX},
		Field{"target_y", c.TargetY},
		Field{"target_epsg", c.TargetEPSG},
		Field{"source_epsg", c.SourceEPSG},
		Field{"extents", c.Extents},
		Field{"target_extents", c.TargetExtents},
	)
}

// normalizeEPSG stores a projection as "EPSG:<code>". Documents normally
// carry the bare code; an explicit prefix is accepted without doubling it.
func normalizeEPSG(v string) string {
	if len(v) >= 5 && strings.EqualFold(v[:5], "EPSG:") {
		return "EPSG:" + v[5:]
	}
	return "EPSG:" + v
}
