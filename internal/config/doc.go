// Package config manages user-level settings stored at ~/.sampy/config.yaml
// and resolves hosting credentials once at the CLI boundary, so the core
// bootstrap stages never read the environment themselves.
package config
