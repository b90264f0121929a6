// Package preview serves painted components and templates over HTTP.
//
// Routes:
//
//	GET  /                   gallery of registered components
//	GET  /components/{name}  paint one component; query values become props
//	POST /paint              paint a template (text/html, JSON or msgpack body)
//	GET  /pages/*            paint a template file from the template directory
//	GET  /metrics            Prometheus exposition
//	GET  /_dev/reload        reload socket (dev mode only)
//
// Every request runs in an OpenTelemetry span named after its route
// pattern and is counted in craft_preview_requests_total.
package preview
