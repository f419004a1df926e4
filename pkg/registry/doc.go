// Package registry holds the canonical, ordered field lists for each CV
// section. A Registry is built once (from Go values, schema files or the
// embedded defaults) and exposes read-only lookups afterwards; there is no
// API for adding or removing sections or fields at runtime.
//
// Schema files are JSON or YAML documents with a top-level `sections` list:
//
//	sections:
//	  - name: general
//	    title: General Information
//	    multiplicity: single
//	    fields:
//	      - key: name
//	        label: Full name
//	        inputKind: short-text
//
// Labels default to a humanised key and multiplicity defaults to `single` for
// the `general` section and `many` for every other section.
package registry
