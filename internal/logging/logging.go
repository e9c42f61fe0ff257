package logging

import (
	"io"
	"log"
	"os"
)

var (
	Debug   *log.Logger
	Scan    *log.Logger
	Enabled bool
)

func init() {
	// Logging is off unless DIRSCOPE_DEBUG is set; the TUI owns the terminal.
	if os.Getenv("DIRSCOPE_DEBUG") == "" {
		Debug = log.New(io.Discard, "", 0)
		Scan = log.New(io.Discard, "", 0)
		Enabled = false
		return
	}

	Enabled = true

	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		Debug = log.New(os.Stderr, "[DEBUG] ", log.Ldate|log.Ltime)
		Scan = log.New(os.Stderr, "[SCAN] ", log.Ldate|log.Ltime)
		return
	}

	Debug = log.New(debugFile, "", log.Lmicroseconds)
	Scan = log.New(debugFile, "", log.Lmicroseconds)
}
