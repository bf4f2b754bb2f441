// Package imb decodes USPS Intelligent Mail Barcodes from their 65-character
// textual bar representation (the A/D/T/F alphabet produced by a scanner).
//
// Decoding runs as a fixed pipeline: the raw string is mapped to bar states,
// split into ascender/descender orientation tracks, reassembled into the
// data+checksum codeword through the specification's reverse lookup tables,
// checked against the embedded 11-bit frame check sequence, and finally
// split into the tracking fields and the routing ZIP code.
//
// All lookup tables are built once at package initialization and are
// immutable afterwards; decoding itself is pure and safe for concurrent use.
package imb
