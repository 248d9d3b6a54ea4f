/*
Package graphstream turns the callback events of a graph execution engine into
a single ordered stream of chat messages.

# Overview

A graph engine produces two asynchronous notification streams while it runs:
token-by-token partial output from model calls, and whole results from node
completions. graphstream correlates both by run ID across an arbitrarily
nested call tree and forwards every discovered message exactly once to a sink,
tagged with the namespace and metadata of the run that produced it.

The handler is purely reactive: it never schedules or executes work. The
engine invokes it synchronously as events happen, which is what preserves the
relative order of emitted chunks.

# Basic Usage

Construct a handler around a sink and hand it to the engine's callback
dispatch:

	handler, err := graphstream.NewHandler(func(chunk graphstream.StreamChunk) {
	    fmt.Printf("%v: %s\n", chunk.Namespace, chunk.Message.Content)
	})
	if err != nil {
	    log.Fatal(err)
	}

	// The engine calls these as work happens:
	handler.OnModelStart(ctx, runID, parentID, tags, metadata)
	handler.OnModelToken(ctx, runID, "Hi", &message.Chunk{...}, tags)
	handler.OnModelEnd(ctx, runID)

# Deduplication

A message streamed incrementally as tokens is not re-emitted in full when its
run completes: every emitted identity is recorded, and node-completion
extraction skips identities already seen. Token emissions themselves are never
suppressed, so partial content always reaches the sink. Messages that arrive
as node inputs are pre-seeded as seen, so pass-through nodes do not re-emit
them as fresh output.

# Message Discovery

Node results are arbitrary values. The handler recursively walks maps,
slices, exported struct fields, and Command update payloads looking for
messages, capped at a fixed depth so cyclic or pathological structures
terminate.

# Observability

Logging, metrics, and tracing are opt-in:

	handler, err := graphstream.NewHandler(sink,
	    graphstream.WithLogger(slog.Default()),
	    graphstream.WithMetrics(observability.NewMetricsRecorder()),
	    graphstream.WithSpanManager(observability.NewSpanManager()))

# Concurrency

All registry and seen-set mutations are serialized by an internal mutex, so
an engine that runs independent branches on separate goroutines may deliver
events concurrently for distinct run IDs. Ordering across concurrent runs is
whatever order the engine dispatches; the handler imposes no reordering.
*/
package graphstream
