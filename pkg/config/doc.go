// Package config provides layered service configuration: built-in
// defaults, an optional lms.yml file (under LMS_CONFIG_PATH, default
// /etc/lms), and LMS_* environment variable overrides. The source of
// every attribute is tracked so the configuration command can show
// where each value came from.
package config
