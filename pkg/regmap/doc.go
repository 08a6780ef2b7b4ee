// Package regmap is the reference document model for register-map JSON
// files: the owner of the field records the editing engine reads and
// proposes updates for.
//
// A map file looks like:
//
//	{
//	  "name": "uart",
//	  "registers": [
//	    {
//	      "name": "CTRL",
//	      "offset": "0x00",
//	      "width": 8,
//	      "fields": [
//	        {"name": "EN",   "bits": 0,      "reset": 1},
//	        {"name": "MODE", "bits": [6, 4], "reset": "0x2"}
//	      ]
//	    }
//	  ]
//	}
//
// "bits" is a bare bit number or an [hi, lo] pair; "reset" and "offset"
// accept numbers or hex strings. Decoding is deliberately lenient:
// malformed scalars become NaN and malformed bit specs stay unresolvable
// instead of failing the load, so the engine's degrade paths see exactly
// what the file held. Validate reports the problems worth telling an
// operator about.
//
// Saving normalizes the file: hex strings come back as numbers and bit
// pairs as [hi, lo]. Writes go through a sidecar flock plus a temp-file
// rename, so a half-written map is never observable and two hosts never
// interleave writes.
package regmap
