// Package autofill implements the field-detection-and-matching engine:
// it scans a document snapshot for fillable form fields, classifies each
// field, resolves the best configured mapping through a multi-tier
// priority match, and applies the winning value with synthetic change
// notifications.
//
// # Architecture
//
// The engine is two cooperating components:
//
//  1. Scanner: walks a dom.Document (or a subtree) and produces Fields
//     with derived metadata such as type, label, and placeholder.
//  2. Filler: matches each Field against the mapping table, applies the
//     winning value, and returns the count of fields actually filled.
//
// Control flow runs scan, then resolve, then apply, synchronous and
// single-threaded within one invocation. Detected fields are produced
// fresh on every scan and hold non-owning element handles; a page
// mutation requires a new scan.
//
// # Matching tiers
//
// The first tier that produces a candidate wins; ties within a tier are
// broken by configured order:
//
//  1. identity-id: mapping id equals the field's id
//  2. identity-name: mapping name equals the field's name
//  3. type-keyword: equal type, keywords scored against the field's
//     label/placeholder/attribute bag
//  4. keyword-only: keywords scored against all field text, any type
//  5. type-fallback: first mapping of equal type
//
// A field with no matching mapping is left untouched and logged at
// debug level; this is not an error.
//
// # Error handling
//
// Failures while deriving or filling one field are recovered locally,
// logged with the field's identity, and never abort the scan or fill.
// Fill always completes over the field list it was given and never
// panics out of its entry points.
package autofill
