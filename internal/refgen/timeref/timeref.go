// Package timeref generates the user-facing booking reference numbers: a
// fixed prefix plus the last six digits of the open timestamp in unix
// milliseconds. Not globally unique, but collision-free for practical
// purposes within one widget session.
package timeref

import (
	"strconv"
	"time"
)

const (
	prefix     = "REF-"
	suffixSize = 6
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) Next(at time.Time) string {
	millis := strconv.FormatInt(at.UnixMilli(), 10)
	if len(millis) > suffixSize {
		millis = millis[len(millis)-suffixSize:]
	}

	return prefix + millis
}
