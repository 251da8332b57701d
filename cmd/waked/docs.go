package main

// General API documentation for swaggo. Regenerate with `swag init`.
//
// @title           waked API
// @version         1.0
// @description     Availability service for a sleeping inference host: composite readiness and idempotent wake trigger.
//
// @BasePath  /
//
// @schemes http
