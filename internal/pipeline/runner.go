package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/vectorgen/internal/audit"
	"github.com/backmassage/vectorgen/internal/config"
	"github.com/backmassage/vectorgen/internal/convert"
	"github.com/backmassage/vectorgen/internal/logging"
	"github.com/backmassage/vectorgen/internal/naming"
	"github.com/backmassage/vectorgen/internal/paths"
	"github.com/backmassage/vectorgen/internal/sigevent"
)

// Tool is the program name recorded in audit records.
const Tool = "vectorgen"

// labelWidth aligns the configuration dump in the run log.
const labelWidth = 32

// Notifier delivers operational events. [sigevent.Client] satisfies it.
type Notifier interface {
	Send(ctx context.Context, sev sigevent.Severity, message string) error
}

// Runner executes one vectorgen run. Log must be non-nil; the run log file
// is attached to it once logfile_dir is verified and detached on return.
type Runner struct {
	Converter convert.Converter
	Notifier  Notifier
	Log       *logging.Logger
	Version   string
	Now       func() time.Time
}

// run carries per-invocation state between the steps.
type run struct {
	opts   config.Options
	cfg    *config.Configuration
	id     naming.RunIdentity
	report *Report
	record *audit.Record
}

// Run walks START -> ConfigLoaded -> DirectoriesVerified -> InputsCollected
// -> NamesResolved -> Converted -> Reported. The first failure jumps to
// Reported: it is logged, sent as an ERROR event and returned. Non-fatal
// problems are collected in Report.Warnings.
func (r *Runner) Run(ctx context.Context, opts config.Options) (*Report, error) {
	start := r.now()
	st := &run{
		opts:   opts,
		report: &Report{},
		record: audit.NewRecord(Tool, r.Version, opts.ConfigurationFile, start),
	}
	st.report.enter(StateStart)
	defer r.Log.Close()

	err := r.execute(ctx, st, start)
	st.report.enter(StateReported)

	if err != nil {
		r.Log.Error("%v", err)
		r.notify(ctx, sigevent.Error, err.Error())
	} else {
		r.notify(ctx, sigevent.Info, "Output created:  "+st.report.OutputPath)
	}
	r.writeAudit(st, err)
	return st.report, err
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) execute(ctx context.Context, st *run, start time.Time) error {
	cfg, err := config.Load(st.opts.ConfigurationFile)
	if err != nil {
		return err
	}
	st.cfg = cfg
	st.id = naming.NewRunIdentity(cfg.ParameterName, cfg.DateOfData, start)
	st.report.Basename = st.id.Basename
	st.report.enter(StateConfigLoaded)

	if err := r.verifyDirectories(st); err != nil {
		return err
	}
	st.report.enter(StateDirectoriesVerified)

	r.logConfiguration(st)

	tiles, err := Collect(cfg)
	if err != nil {
		return err
	}
	st.report.Inputs = tiles
	st.report.enter(StateInputsCollected)
	r.Log.Debug("input tiles: %s", strings.Join(tiles, ", "))

	names, err := naming.Resolve(cfg, st.id)
	if err != nil {
		return err
	}
	st.report.enter(StateNamesResolved)

	conv := &convert.Runner{Converter: r.Converter, Log: r.Log}
	res, err := conv.Run(ctx, tiles.Resolve(cfg.WorkingDir), names.BasenamePath, names.OutputPath, cfg.OutputFormat)
	if err != nil {
		return err
	}
	st.report.OutputPath = res.OutputPath
	st.report.OutputBytes = res.Bytes
	st.report.enter(StateConverted)
	r.Log.Infow("conversion finished", "input", res.Input, "output", res.OutputPath, "bytes", res.Bytes)
	return nil
}

// verifyDirectories checks logfile_dir first so the run log can start,
// then the remaining directories.
func (r *Runner) verifyDirectories(st *run) error {
	cfg := st.cfg
	if err := paths.VerifyDir(cfg.LogfileDir, "logfile_dir"); err != nil {
		return err
	}
	logPath := cfg.LogfileDir + st.id.Basename + ".log"
	if err := r.Log.OpenFile(logPath); err != nil {
		return err
	}
	st.report.LogFile = logPath

	if cfg.InputDir != "" {
		if err := paths.VerifyDir(cfg.InputDir, "input_dir"); err != nil {
			return err
		}
	}
	if err := paths.VerifyDir(cfg.OutputDir, "output_dir"); err != nil {
		return err
	}
	return paths.VerifyDir(cfg.WorkingDir, "working_dir")
}

func (r *Runner) logConfiguration(st *run) {
	r.logField("config XML file:", st.opts.ConfigurationFile)
	if err := r.copyConfiguration(st); err != nil {
		r.Log.Warn("%v", err)
		st.report.warn(err)
	}
	for _, f := range st.cfg.Fields() {
		r.logField("config "+f.Label+":", f.Value)
	}
	r.logField("vectorgen current_cycle_time:", st.id.CycleTime)
	r.logField("vectorgen basename:", st.id.Basename)
}

func (r *Runner) logField(label, value string) {
	r.Log.Info("%-*s%s", labelWidth, label, value)
}

// copyConfiguration keeps a copy of the configuration document in
// working_dir so the output can be recreated. Nothing is copied when the
// document already lives there.
func (r *Runner) copyConfiguration(st *run) error {
	src, err := filepath.Abs(st.opts.ConfigurationFile)
	if err != nil {
		return fmt.Errorf("copy configuration: %w", err)
	}
	workDir := strings.TrimSuffix(st.cfg.WorkingDir, string(filepath.Separator))
	if filepath.Dir(src) == workDir {
		return nil
	}
	dst := st.cfg.WorkingDir + st.id.Basename + ".configuration_file.xml"
	if err := paths.Copy(src, dst); err != nil {
		return fmt.Errorf("copy configuration: %w", err)
	}
	r.logField("config XML file copied to", st.cfg.WorkingDir)
	return nil
}

// notify sends an event; delivery failures are logged and otherwise ignored.
func (r *Runner) notify(ctx context.Context, sev sigevent.Severity, msg string) {
	if r.Notifier == nil {
		return
	}
	if err := r.Notifier.Send(ctx, sev, msg); err != nil {
		r.Log.Warn("sigevent not delivered: %v", err)
	}
}

// writeAudit records the run in working_dir. It is skipped when the run
// failed before working_dir was verified.
func (r *Runner) writeAudit(st *run, runErr error) {
	if !st.report.Reached(StateDirectoriesVerified) {
		return
	}
	rec := st.record
	cfg := st.cfg
	rec.Basename = st.id.Basename
	rec.CycleTime = st.id.CycleTime
	rec.ParameterName = cfg.ParameterName
	rec.DateOfData = cfg.DateOfData
	rec.TimeOfData = cfg.TimeOfData
	rec.OutputFormat = string(cfg.OutputFormat)
	rec.Inputs = st.report.Inputs
	rec.Output = st.report.OutputPath
	rec.OutputBytes = st.report.OutputBytes
	rec.States = st.report.StateNames()
	rec.FinishedAt = r.now()
	rec.Status = audit.StatusSuccess
	if runErr != nil {
		rec.Status = audit.StatusFailure
		rec.Error = runErr.Error()
	}

	path, err := rec.Write(cfg.WorkingDir, st.id.Basename)
	if err != nil {
		r.Log.Warn("%v", err)
		st.report.warn(err)
		return
	}
	st.report.AuditPath = path
	r.Log.Debug("audit record: %s", path)
}
