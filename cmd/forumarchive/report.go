package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// level tags a report line.
type level int

const (
	levelInfo level = iota
	levelOK
	levelWarn
	levelError
)

var levelTags = [...]string{
	levelInfo:  "INFO",
	levelOK:    "OK",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

var levelColors = [...]string{
	levelInfo:  "\x1b[34m",
	levelOK:    "\x1b[32m",
	levelWarn:  "\x1b[33m",
	levelError: "\x1b[31m",
}

const (
	colorReset       = "\x1b[0m"
	reportLabelWidth = 16
)

// report prints the aligned "label: [TAG] detail" lines shared by export,
// status and config validate. Lines are coloured only on a terminal.
type report struct {
	out      io.Writer
	colorize bool
}

func newReport(out io.Writer) *report {
	return &report{out: out, colorize: isTerminal(out)}
}

func (r *report) heading(title string) {
	banner := "== " + title + " =="
	r.emit(levelInfo, banner)
	r.emit(levelInfo, strings.Repeat("-", len(banner)))
}

func (r *report) line(label string, lvl level, detail string) {
	r.emit(lvl, formatLine(label, lvl, detail))
}

// shortfall reports a count that is healthy only at zero, such as missing
// assets or undecodable records.
func (r *report) shortfall(label string, n int) {
	lvl := levelOK
	if n > 0 {
		lvl = levelWarn
	}
	r.line(label, lvl, strconv.Itoa(n))
}

func (r *report) failure(label string, err error) {
	r.line(label, levelError, err.Error())
}

// plain writes text without a tag or colour.
func (r *report) plain(text string) {
	fmt.Fprintln(r.out, text)
}

func (r *report) emit(lvl level, text string) {
	if r.colorize {
		text = levelColors[lvl] + text + colorReset
	}
	fmt.Fprintln(r.out, text)
}

func formatLine(label string, lvl level, detail string) string {
	tag := "[" + levelTags[lvl] + "]"
	if detail != "" {
		tag += " " + detail
	}
	return fmt.Sprintf("  %-*s %s", reportLabelWidth, label+":", tag)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
