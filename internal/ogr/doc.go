// Package ogr drives the GDAL ogr2ogr command-line tool, which performs the
// actual vector conversion.
//
//   - BuildArgs(binary, src, dst) → []string
//     ogr2ogr -f GeoJSON <dst> <src>
//   - (*Executor).Convert(ctx, src, dst) → error
//     PATH preflight, run with stdout/stderr captured, log the tool's
//     output, and classify failures into a *ToolError.
//
// ogr2ogr sometimes reports a failed layer copy on stderr while still
// exiting 0, so stderr is scanned for "ERROR n:" and "FAILURE:" lines in
// addition to checking the exit status.
package ogr
