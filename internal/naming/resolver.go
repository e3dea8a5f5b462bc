package naming

import (
	"time"

	"github.com/backmassage/vectorgen/internal/config"
)

// Layouts for date_of_data and date_of_data+time_of_data.
const (
	dateLayout     = "20060102"
	dateTimeLayout = "20060102150405"
)

// Names is the resolved naming for one run.
type Names struct {
	Basename       string    // RunIdentity.Basename.
	BasenamePath   string    // output_dir + Basename; the staging stem.
	OutputFilename string    // Expanded output_name, without directory.
	OutputPath     string    // output_dir + OutputFilename.
	DataTime       time.Time // Time the directives were formatted against.
}

// DataTime parses the configured data date, including time_of_data when
// it is six characters long. Parse failures return a *config.DateFormatError.
func DataTime(cfg *config.Configuration) (time.Time, error) {
	if cfg.HasTime() {
		t, err := time.Parse(dateTimeLayout, cfg.DateOfData+cfg.TimeOfData)
		if err != nil {
			return time.Time{}, &config.DateFormatError{
				Field: "time_of_data", Value: cfg.DateOfData + cfg.TimeOfData,
				Layout: "yyyymmddHHMMSS", Err: err,
			}
		}
		return t, nil
	}
	t, err := time.Parse(dateLayout, cfg.DateOfData)
	if err != nil {
		return time.Time{}, &config.DateFormatError{
			Field: "date_of_data", Value: cfg.DateOfData, Layout: "yyyymmdd", Err: err,
		}
	}
	return t, nil
}

// Resolve computes the staging basename path and the final output path for
// a run.
func Resolve(cfg *config.Configuration, id RunIdentity) (Names, error) {
	ts, err := DataTime(cfg)
	if err != nil {
		return Names{}, err
	}
	filename := ParseTemplate(cfg.OutputName, cfg.ParameterName).Expand(ts)
	return Names{
		Basename:       id.Basename,
		BasenamePath:   cfg.OutputDir + id.Basename,
		OutputFilename: filename,
		OutputPath:     cfg.OutputDir + filename,
		DataTime:       ts,
	}, nil
}
