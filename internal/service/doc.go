// Package service holds the use cases behind the HTTP routes and CLI
// commands: usuario and perfil management, filtered consultation and
// login.
//
// Filtered consultation goes through the query engine; every call is
// counted in the consulta_queries_total metric by table and outcome.
package service
