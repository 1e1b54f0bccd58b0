// Package router mounts resources onto a gorilla/mux router with
// format-suffix routes plus OpenAPI validation, CORS, timeout, and logging
// defaults. ExampleNew demonstrates combining built-in and custom
// middlewares.
package router
