// Package handlers exposes the contact endpoint and the JSON error
// handlers shared by every brand app.
//
//	POST /api/send-email  {"name", "email", "subject", "message"}
//
// Responses are always JSON: {"success": true} on delivery, otherwise
// {"error": "<message>"} with 400, 422 or 500.
package handlers
