// Package app contains the core application logic for both binaries: the
// whole-brain processing pipeline (App) and the study launcher (LaunchApp).
// It defines their configurations and execution lifecycles, decoupled from
// command-line parsing.
package app
