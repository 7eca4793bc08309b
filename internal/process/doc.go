// Package process manages the external processes spawned by PDF engines:
// the headless browser and the weasyprint or wkhtmltopdf binaries.
package process
