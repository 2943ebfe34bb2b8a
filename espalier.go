package espalier

// Version is the release version stamped into the CLI and commit metadata.
var Version = "0.1.0"
