// Package splay contains the core components of Splay, an engine for columnar
// data transformation built around row flattening: expanding rows whose cells
// contain delimited text or fixed-length vectors into one row per value.
// This root package defines the types employed during regular use of the
// engine, as well as in its extension, and is an overview of Splay's key
// concepts.
package splay
