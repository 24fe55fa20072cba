// Package vercmp normalizes and orders package version strings.
//
// Version tags in the wild carry VCS revision suffixes ("+git.r5.abcdef"),
// snapshot markers ("r20230101"), tag prefixes ("v1.2.3"), and release
// suffixes ("-2"). Sanitize strips those down to a plain dotted version and
// Compare orders two such versions the conventional way: numeric segments
// compare as integers, everything else lexicographically.
package vercmp

import (
	"strconv"
	"strings"
)

// Sanitize normalizes a raw version string for ordering. It strips, in
// order: anything from the first "+" on (revision tags), a leading "r"
// (VCS snapshot marker), a leading "v" (tag prefix), and a trailing
// "-<integer>" release suffix. The boolean is false when the remainder does
// not start with a digit, which marks the version as non-standard; such
// versions must not be fed to Compare.
func Sanitize(raw string) (string, bool) {
	s := raw
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimPrefix(s, "r")
	s = strings.TrimPrefix(s, "v")
	if i := strings.LastIndexByte(s, '-'); i >= 0 && isInteger(s[i+1:]) {
		s = s[:i]
	}
	if s == "" || s[0] < '0' || s[0] > '9' {
		return "", false
	}
	return s, true
}

// Compare orders two sanitized version strings. It returns a negative value
// when a orders before b, zero when they are equal, and a positive value
// when a orders after b. Versions split on "." and compare segment by
// segment; when both segments are integers they compare numerically, so
// "1.10" orders after "1.9". A missing segment orders before any present
// one ("1.2" before "1.2.0").
func Compare(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

func compareSegment(a, b string) int {
	an, aok := strconv.Atoi(a)
	bn, bok := strconv.Atoi(b)
	if aok == nil && bok == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
