// Package ui provides theme and color support for intcalc's terminal
// output. It defines color schemes and exposes ANSI escape sequences so that
// presentation code never hard-codes colors.
package ui
