// Package cli wires the cobra command tree for the sampy binary: project
// bootstrap (new), file skeleton generation (gen), S3 transfer (s3), and
// the config, doctor, and version utilities.
package cli
