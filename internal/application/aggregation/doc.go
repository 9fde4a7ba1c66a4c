// Package aggregation computes period totals, KPI ratios and grouped views
// over transactions and accounting entries.
//
// Every function here is pure: it reads the collection it is given, never
// mutates it, and returns the same output for the same input. Empty input
// yields zero totals and empty groupings.
package aggregation
