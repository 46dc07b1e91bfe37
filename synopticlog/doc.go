// Package synopticlog provides the structured logger that bisim.New and
// synoptic.Run accept as an argument instead of reaching for a
// package-level global. It wraps github.com/sirupsen/logrus, matching
// the pack's convention of structured, leveled, field-based logging
// over the standard library's bare log package.
package synopticlog
