// Package cli is responsible for parsing the command lines of both binaries,
// validating user input, and handling process-level concerns like exit
// codes. It translates CLI flags into the app package's configurations.
package cli
