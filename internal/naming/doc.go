// Package naming derives the names a run writes under: the run identity
// (a basename stamped with the processing cycle time) and the dated output
// filename produced from the configured output_name template.
//
// Templates support two kinds of substitution, applied in this order:
//
//   - the literal token {$parameter_name}, replaced once with the parameter name;
//   - strftime-style %<c> directives, each formatted against the data time.
//
// Directive substitution is sequential: every two-character window that
// starts with '%' is collected left to right (duplicates kept), then each
// collected directive replaces its first remaining occurrence. A literal '%'
// followed by any character is therefore treated as a directive and handed
// to the strftime formatter as-is.
package naming
