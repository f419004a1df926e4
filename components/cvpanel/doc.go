// Package cvpanel serves the CV builder over HTTP: the rendered page, JSON
// views of the schemas and collection, and the form endpoints that feed
// update and submit events into a session.State.
//
// Routes (relative to the mount path):
//
//	GET   /                                page
//	GET   /cv.json                         submitted collection
//	GET   /sections                        section schemas
//	GET   /assets/*                        bundled stylesheet
//	POST  /sections/{section}              form post, action=save|submit|reset
//	PATCH /sections/{section}/fields/{key} single field update
//	POST  /panel/toggle                    flip the side panel
package cvpanel
