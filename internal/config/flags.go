package config

// This file declares the command-line options and binds them to a pflag set.
// The long names keep their historical underscore spelling so existing
// cron entries and wrapper scripts continue to work.

import "github.com/spf13/pflag"

const (
	DefaultConfigurationFile = "./vectorgen_configuration_file.xml"
	DefaultSigeventURL       = "http://localhost:8100/sigevent/events/create"
)

// Options holds the command-line settings for one invocation.
type Options struct {
	ConfigurationFile string
	SigeventURL       string
	DataOnly          bool // Accepted for compatibility; has no effect on GeoJSON output.
	Verbose           bool
	CheckOnly         bool
}

// DefaultOptions returns Options with every flag at its default.
func DefaultOptions() Options {
	return Options{
		ConfigurationFile: DefaultConfigurationFile,
		SigeventURL:       DefaultSigeventURL,
	}
}

// BindFlags registers the vectorgen flags on fs, writing into o.
func BindFlags(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.ConfigurationFile, "configuration_filename", "c", o.ConfigurationFile,
		"Full path of configuration filename")
	fs.BoolVarP(&o.DataOnly, "data_only", "d", o.DataOnly,
		"Only output the MRF data, index, and header files")
	fs.StringVarP(&o.SigeventURL, "sigevent_url", "s", o.SigeventURL,
		"URL of the SigEvent endpoint")
	fs.BoolVarP(&o.Verbose, "verbose", "v", o.Verbose, "Debug-level console output")
	fs.BoolVar(&o.CheckOnly, "check", o.CheckOnly, "Report ogr2ogr and driver availability, then exit")
}
