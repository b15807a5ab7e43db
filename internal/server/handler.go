package server

import "github.com/eternalApril/respwire/internal/resp"

// Handler turns one decoded request into the reply sent back to the peer
type Handler interface {
	ServeRESP(req resp.Value) resp.Value
}

// HandlerFunc adapts a plain function to Handler
type HandlerFunc func(req resp.Value) resp.Value

func (f HandlerFunc) ServeRESP(req resp.Value) resp.Value {
	return f(req)
}

// Echo replies with the request itself
var Echo Handler = HandlerFunc(func(req resp.Value) resp.Value {
	return req
})
