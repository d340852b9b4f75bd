// Package httpapi exposes the circulation engine over HTTP using gin.
//
// Every endpoint answers with a GenericResponse. Rejections keep their verbatim description,
// NotFound maps to 404 and InvalidTransition to 409. Malformed requests are rejected with 400 before
// the engine is called. Any other failure maps to 500 with the generic description.
package httpapi
