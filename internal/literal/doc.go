// Package literal decodes the spelling of C constants: integer digits and
// suffixes, floating mantissa and exponent, character constants and string
// literals with their encoding prefixes and escapes. It does no typing; the
// semantic layer picks types from the decoded suffix and value.
package literal
