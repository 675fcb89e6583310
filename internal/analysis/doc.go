// Package analysis derives a marketing analysis from text extracted off a
// banner.
//
// Analyzer sends one chat request through an llm.Provider and Parse reads the
// labelled response into a Report. Parsing is tolerant: labels may be Korean
// or English, values may span several lines, and any field the model leaves
// out keeps a generic default. Pricing is the exception and stays nil when
// the banner carries no price information.
package analysis
