// Package report renders solved states and scans as terminal tables, ASCII
// plots and SVG figures.
package report
