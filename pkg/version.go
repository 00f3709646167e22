package convdb

var (
	// Version of convdb.
	Version = "v0.1.0"
	// Build timestamp, set during compilation.
	Build = "n/a"
)
