// Package openapi derives CV section schemas from an OpenAPI 3 document.
//
// Every component schema carrying the x-cv-section extension becomes a
// section; its properties become field descriptors. Supported extensions:
//
//	x-cv-section       section name (string) or true to use the component name
//	x-cv-multiplicity  "single" or "many"
//	x-cv-order         integer sort key for properties
//	x-cv-input         input kind override (short-text, email, phone, date, long-text)
//	x-placeholder      placeholder text
package openapi
