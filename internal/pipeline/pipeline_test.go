package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/vectorgen/internal/audit"
	"github.com/backmassage/vectorgen/internal/config"
	"github.com/backmassage/vectorgen/internal/logging"
	"github.com/backmassage/vectorgen/internal/paths"
	"github.com/backmassage/vectorgen/internal/sigevent"
)

// --- Collect tests ---

func TestCollect_ExplicitListTrimmed(t *testing.T) {
	cfg := &config.Configuration{InputFiles: "a.shp, b.shp", OutputFormat: config.FormatGeoJSON}
	got, err := Collect(cfg)
	require.NoError(t, err)
	assert.Equal(t, TileSet{"a.shp", "b.shp"}, got)
}

func TestCollect_NoInputs(t *testing.T) {
	for _, files := range []string{"", "   "} {
		_, err := Collect(&config.Configuration{InputFiles: files, OutputFormat: config.FormatGeoJSON})
		assert.ErrorIs(t, err, ErrNoInputFiles)
	}
}

func TestCollect_InputDirGlob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.geojson", "c.shp", "c.dbf"} {
		touch(t, dir, name)
	}
	inputDir := paths.WithTrailingSlash(dir)

	tests := []struct {
		name   string
		files  string
		format config.OutputFormat
		want   []string
	}{
		{"geojson selects json", "", config.FormatGeoJSON, []string{"a.geojson", "b.json"}},
		{"json selects json", "", config.FormatJSON, []string{"a.geojson", "b.json"}},
		{"other formats take everything", "", config.FormatMRF, []string{"a.geojson", "b.json", "c.dbf", "c.shp"}},
		{"explicit entries first", " x.shp ", config.FormatGeoJSON, []string{"x.shp", "a.geojson", "b.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Configuration{InputDir: inputDir, InputFiles: tt.files, OutputFormat: tt.format}
			got, err := Collect(cfg)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, basenames(got)); diff != "" {
				t.Errorf("Collect mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollect_EmptyDirIsNotAnError(t *testing.T) {
	cfg := &config.Configuration{InputDir: paths.WithTrailingSlash(t.TempDir()), OutputFormat: config.FormatGeoJSON}
	got, err := Collect(cfg)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTileSet_Resolve(t *testing.T) {
	ts := TileSet{"a.shp", "/abs/b.shp", "sub/c.shp"}
	got := ts.Resolve("/work/")
	assert.Equal(t, TileSet{"/work/a.shp", "/abs/b.shp", "/work/sub/c.shp"}, got)
	assert.Equal(t, "a.shp", ts[0])
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "START", StateStart.String())
	assert.Equal(t, "DirectoriesVerified", StateDirectoriesVerified.String())
	assert.Equal(t, "Reported", StateReported.String())
	assert.Equal(t, "Unknown", State(42).String())
}

// --- Runner tests ---

var fixedStart = time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)

const wantBasename = "fires_20200101___vectorgen_20240102.030405"

type fakeConverter struct {
	calls int
	src   string
}

func (f *fakeConverter) Convert(_ context.Context, src, dst string) error {
	f.calls++
	f.src = src
	return os.WriteFile(dst, []byte(`{"type":"FeatureCollection","features":[]}`), 0o644)
}

type event struct {
	sev sigevent.Severity
	msg string
}

type fakeNotifier struct {
	events []event
	err    error
}

func (n *fakeNotifier) Send(_ context.Context, sev sigevent.Severity, msg string) error {
	n.events = append(n.events, event{sev, msg})
	return n.err
}

type env struct {
	in, out, work, logs string
	configPath          string
	console             *bytes.Buffer
	converter           *fakeConverter
	notifier            *fakeNotifier
	runner              *Runner
}

func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()
	e := &env{
		in:        filepath.Join(root, "in"),
		out:       filepath.Join(root, "out"),
		work:      filepath.Join(root, "work"),
		logs:      filepath.Join(root, "logs"),
		console:   &bytes.Buffer{},
		converter: &fakeConverter{},
		notifier:  &fakeNotifier{},
	}
	for _, d := range []string{e.in, e.out, e.work, e.logs, filepath.Join(root, "etc")} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}
	touch(t, e.in, "fires.shp")
	e.configPath = filepath.Join(root, "etc", "vectorgen_configuration_file.xml")
	e.runner = &Runner{
		Converter: e.converter,
		Notifier:  e.notifier,
		Log:       logging.New(logging.Options{Stdout: e.console, Stderr: e.console}),
		Version:   "1.0.0",
		Now:       func() time.Time { return fixedStart },
	}
	return e
}

func (e *env) writeConfig(t *testing.T, date, outputDir string) {
	t.Helper()
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<vectorgen_configuration>
  <date_of_data>` + date + `</date_of_data>
  <parameter_name>fires</parameter_name>
  <input_files>` + filepath.Join(e.in, "fires.shp") + `</input_files>
  <output_dir>` + outputDir + `</output_dir>
  <working_dir>` + e.work + `</working_dir>
  <logfile_dir>` + e.logs + `</logfile_dir>
  <output_format>GeoJSON</output_format>
</vectorgen_configuration>
`
	require.NoError(t, os.WriteFile(e.configPath, []byte(xml), 0o644))
}

func (e *env) run(t *testing.T) (*Report, error) {
	t.Helper()
	opts := config.DefaultOptions()
	opts.ConfigurationFile = e.configPath
	return e.runner.Run(context.Background(), opts)
}

func TestRun_EndToEnd(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "20200101", e.out)

	rep, err := e.run(t)
	require.NoError(t, err)

	wantOut := filepath.Join(e.out, "fires2020001_.json")
	entries, err := os.ReadDir(e.out)
	require.NoError(t, err)
	require.Len(t, entries, 1, "exactly one file in output_dir")
	assert.Equal(t, "fires2020001_.json", entries[0].Name())

	assert.Equal(t, 1, e.converter.calls)
	assert.Equal(t, filepath.Join(e.in, "fires.shp"), e.converter.src)
	assert.Equal(t, wantBasename, rep.Basename)
	assert.Equal(t, wantOut, rep.OutputPath)
	assert.Equal(t, []string{"START", "ConfigLoaded", "DirectoriesVerified", "InputsCollected",
		"NamesResolved", "Converted", "Reported"}, rep.StateNames())
	assert.Zero(t, rep.ErrorCount())

	logData, err := os.ReadFile(filepath.Join(e.logs, wantBasename+".log"))
	require.NoError(t, err)
	logText := string(logData)
	assert.Contains(t, logText, e.configPath)
	assert.Contains(t, logText, "vectorgen basename:             "+wantBasename)
	assert.Contains(t, logText, wantOut)

	assert.FileExists(t, filepath.Join(e.work, wantBasename+".configuration_file.xml"))

	rec, err := audit.Read(filepath.Join(e.work, wantBasename+audit.Suffix))
	require.NoError(t, err)
	assert.Equal(t, audit.StatusSuccess, rec.Status)
	assert.Equal(t, wantOut, rec.Output)
	assert.Equal(t, rep.StateNames(), rec.States)

	require.Len(t, e.notifier.events, 1)
	assert.Equal(t, event{sigevent.Info, "Output created:  " + wantOut}, e.notifier.events[0])
}

func TestRun_BadDateFailsBeforeDirectories(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "2020010", "/nonexistent/out")

	rep, err := e.run(t)
	var dfe *config.DateFormatError
	require.True(t, errors.As(err, &dfe), "got %v", err)
	assert.Equal(t, "date_of_data", dfe.Field)

	assert.Zero(t, e.converter.calls)
	assert.Equal(t, []string{"START", "Reported"}, rep.StateNames())
	assert.Empty(t, rep.LogFile)

	entries, err := os.ReadDir(e.logs)
	require.NoError(t, err)
	assert.Empty(t, entries, "no run log before directory verification")

	require.Len(t, e.notifier.events, 1)
	assert.Equal(t, sigevent.Error, e.notifier.events[0].sev)
	assert.Contains(t, e.console.String(), "date_of_data")
}

func TestRun_MissingOutputDir(t *testing.T) {
	e := newEnv(t)
	missing := filepath.Join(e.work, "missing")
	e.writeConfig(t, "20200101", missing)

	rep, err := e.run(t)
	var dnf *paths.DirectoryNotFoundError
	require.True(t, errors.As(err, &dnf), "got %v", err)
	assert.Equal(t, "output_dir", dnf.Label)
	assert.Zero(t, e.converter.calls)
	assert.False(t, rep.Reached(StateDirectoriesVerified))

	logData, err := os.ReadFile(rep.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "output_dir")

	require.Len(t, e.notifier.events, 1)
	assert.Equal(t, sigevent.Error, e.notifier.events[0].sev)
	assert.NoFileExists(t, filepath.Join(e.work, wantBasename+audit.Suffix))
}

func TestRun_NoInputs(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "20200101", e.out)
	data, err := os.ReadFile(e.configPath)
	require.NoError(t, err)
	stripped := strings.Replace(string(data), "<input_files>"+filepath.Join(e.in, "fires.shp")+"</input_files>", "", 1)
	require.NoError(t, os.WriteFile(e.configPath, []byte(stripped), 0o644))

	rep, err := e.run(t)
	assert.ErrorIs(t, err, ErrNoInputFiles)
	assert.Zero(t, e.converter.calls)

	rec, err := audit.Read(rep.AuditPath)
	require.NoError(t, err)
	assert.Equal(t, audit.StatusFailure, rec.Status)
	assert.Equal(t, ErrNoInputFiles.Error(), rec.Error)
}

func TestRun_NotifierFailureIsNotFatal(t *testing.T) {
	e := newEnv(t)
	e.notifier.err = errors.New("connection refused")
	e.writeConfig(t, "20200101", e.out)

	rep, err := e.run(t)
	require.NoError(t, err)
	assert.Zero(t, rep.ErrorCount())
	assert.Contains(t, e.console.String(), "sigevent not delivered")
}

func TestRun_ConfigCopyFailureIsCounted(t *testing.T) {
	e := newEnv(t)
	e.writeConfig(t, "20200101", e.out)
	// A directory in the way makes the copy fail.
	require.NoError(t, os.Mkdir(filepath.Join(e.work, wantBasename+".configuration_file.xml"), 0o755))

	rep, err := e.run(t)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.ErrorCount())
	assert.FileExists(t, rep.OutputPath)
}

func TestRun_ConfigInWorkingDirNotCopied(t *testing.T) {
	e := newEnv(t)
	e.configPath = filepath.Join(e.work, "vectorgen_configuration_file.xml")
	e.writeConfig(t, "20200101", e.out)

	_, err := e.run(t)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(e.work, wantBasename+".configuration_file.xml"))
}

// --- Helpers ---

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
