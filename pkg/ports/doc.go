/*
Package ports defines the interfaces between the Florence core and its
adapters, following Hexagonal Architecture principles.

Driven ports (implemented by adapters, consumed by the core):

  - StateStore: persistence for per-session conversation state.
  - DataStore: read-only access to the host system's business records.
  - Generator: a generative model backend (text generation + embeddings).

The core never writes business data; every DataStore method is a read.
*/
package ports
