// Package tui is the interactive terminal front end: a four-field form
// driving a session, and a live pendulum animation for command-line runs.
package tui
