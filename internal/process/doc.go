// Package process starts and stops the external programs marrow relies on:
// the system handler that opens links and files, and the headless browser
// used for PDF export.
package process
