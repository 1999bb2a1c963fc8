// Package dataset reads and writes the two-column CSV format used to
// exchange Frank-Starling measurements: an IV volume column and a ΔVTI
// response column. Rows with a blank response are preserved as unmeasured
// samples; the analysis layer filters them out through Dataset.Clean.
//
// Import is tolerant of real-world clinical exports: byte order marks and
// UTF-16 encodings (common in spreadsheet exports) are decoded
// transparently, header matching ignores case and surrounding whitespace,
// and a comma-decimal mode handles locales that write 7,5 for 7.5.
package dataset
