// Package errors defines the closed failure taxonomy of the validator gateway.
//
// Every failure the gateway can report is one Kind. Each Kind carries a stable
// API code, an HTTP status, a title and a message template, all held in a
// single static table. Components raise a *GatewayError carrying a Kind and an
// optional detail; the HTTP boundary renders it as {code, title, message}.
//
// API codes are part of the public contract. Once issued, a code must never be
// reassigned to a different failure.
package errors
