package ogr

// Binary is the default conversion tool looked up on PATH.
const Binary = "ogr2ogr"

// GeoJSONDriver is the OGR driver name for GeoJSON output.
const GeoJSONDriver = "GeoJSON"

// BuildArgs returns the complete argv (including the binary) that converts
// src into a GeoJSON file at dst. ogr2ogr takes the destination before the
// source.
func BuildArgs(binary, src, dst string) []string {
	if binary == "" {
		binary = Binary
	}
	return []string{binary, "-f", GeoJSONDriver, dst, src}
}
