package graphstream

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/graphstream/pkg/graphstream/message"
	"github.com/randalmurphal/graphstream/pkg/graphstream/observability"
)

// NamespaceSep is the default separator joining namespace segments in the
// checkpoint namespace metadata field.
const NamespaceSep = "|"

// Metadata keys every registered run must carry.
const (
	// MetaKeyCheckpointNS holds the separator-joined namespace locating
	// the run within the nested graph structure. Required on every
	// registered run.
	MetaKeyCheckpointNS = "checkpoint_ns"

	// MetaKeyNode holds the name of the graph node a run executes.
	MetaKeyNode = "graph_node"

	// MetaKeyTags is the metadata entry overwritten with the filtered
	// tags of the latest token event for a run.
	MetaKeyTags = "tags"
)

// Tag markers understood by the handler.
const (
	// TagNoStream on a model start suppresses streaming for that run.
	TagNoStream = "no-stream"

	// TagHidden on a node start suppresses streaming for that run.
	TagHidden = "hidden"

	// TagSeqStepPrefix marks engine-internal sequencing tags. They are
	// stripped before metadata is attached to emitted chunks.
	TagSeqStepPrefix = "seq:step"
)

const defaultMaxDepth = 5

// Emission kinds reported to metrics.
const (
	kindToken  = "token"
	kindOutput = "output"
)

// runMeta is the registry entry for one tracked run. metadata is a snapshot
// of the record the engine supplied at registration, so later mutation of the
// engine's own record does not alias into emitted chunks.
type runMeta struct {
	namespace []string
	metadata  map[string]any
}

// Handler correlates model and node lifecycle events into a deduplicated,
// ordered stream of messages. Construct with NewHandler and register it with
// the engine's callback dispatch.
//
// A Handler is scoped to one streaming session: its seen-set grows
// monotonically for its lifetime so that completed runs never re-emit
// messages already streamed incrementally. Call Reset at a session boundary
// to reuse a handler.
type Handler struct {
	sink Sink

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	sep      string
	maxDepth int

	mu   sync.Mutex
	runs map[string]*runMeta
	seen map[string]struct{}
}

// NewHandler creates a handler forwarding emitted chunks to sink.
// Returns ErrNilSink if sink is nil.
func NewHandler(sink Sink, opts ...Option) (*Handler, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	h := &Handler{
		sink:     sink,
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
		sep:      NamespaceSep,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Reset clears the run registry and the seen-set. Call only at a session
// boundary, when no runs are in flight; identities seen before the reset may
// be emitted again afterwards.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = nil
	h.seen = nil
}

// OnModelStart registers a model run unless metadata is absent or the run is
// tagged TagNoStream. Returns a *ContractError if the metadata record lacks a
// string checkpoint namespace.
func (h *Handler) OnModelStart(ctx context.Context, runID, parentRunID string, tags []string, metadata map[string]any) error {
	if metadata == nil || hasTag(tags, TagNoStream) {
		return nil
	}
	meta, err := h.newRunMeta(runID, metadata)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.register(runID, meta)

	h.metrics.RecordRunTracked(ctx, "model")
	observability.LogRunRegistered(h.logger, runID, "model", meta.namespace)
	return nil
}

// OnModelToken streams one partial generation chunk. Values that are not a
// *message.Chunk carrying a message are silently skipped; events for
// unregistered runs are no-ops. Token emissions are never deduplicated, so
// partial content always reaches the sink, but their identities are recorded
// to suppress a later whole-message re-emission.
func (h *Handler) OnModelToken(ctx context.Context, runID, token string, chunk any, tags []string) {
	gc, ok := chunk.(*message.Chunk)
	if !ok || gc == nil || gc.Message == nil {
		observability.LogTokenSkipped(h.logger, runID)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	meta, ok := h.runs[runID]
	if !ok {
		return
	}
	if filtered := filterTags(tags); len(filtered) > 0 {
		// Last token's filtered tags win for the whole run.
		meta.metadata[MetaKeyTags] = filtered
	}
	h.emit(ctx, meta, gc.Message, false, kindToken)
}

// OnModelEnd deregisters a model run. Unknown run IDs are a no-op.
func (h *Handler) OnModelEnd(ctx context.Context, runID string) {
	h.deregister(ctx, runID, "model")
}

// OnModelError deregisters a failed model run. The error itself is not
// surfaced; propagation is the engine's responsibility.
func (h *Handler) OnModelError(ctx context.Context, runID string, err error) {
	h.deregister(ctx, runID, "model")
}

// OnNodeStart registers a node run when metadata is present, the invocation
// name matches the node recorded in metadata (filtering out unrelated
// sub-invocations inside the node), and the run is not tagged TagHidden.
// Message-valued inputs with identities are pre-seeded as seen, so a node
// that passes an input through unchanged does not re-emit it as fresh output.
// Returns a *ContractError if the metadata record lacks a string checkpoint
// namespace.
func (h *Handler) OnNodeStart(ctx context.Context, runID, name string, inputs map[string]any, tags []string, metadata map[string]any) error {
	if metadata == nil || hasTag(tags, TagHidden) {
		return nil
	}
	node, _ := metadata[MetaKeyNode].(string)
	if name != node {
		return nil
	}
	meta, err := h.newRunMeta(runID, metadata)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.register(runID, meta)
	h.seedInputs(inputs)

	h.metrics.RecordRunTracked(ctx, "node")
	observability.LogRunRegistered(h.logger, runID, "node", meta.namespace)
	return nil
}

// OnNodeEnd deregisters a node run and recursively extracts messages from its
// result, emitting each one not already seen. Unknown run IDs are a no-op.
func (h *Handler) OnNodeEnd(ctx context.Context, runID string, response any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	meta, ok := h.runs[runID]
	if !ok {
		return
	}
	delete(h.runs, runID)

	start := time.Now()
	ctx, span := h.spans.StartExtractSpan(ctx, runID)
	found := h.extract(ctx, meta, response, 0)
	h.spans.EndSpanWithError(span, nil)

	h.metrics.RecordExtraction(ctx, time.Since(start), found)
	observability.LogRunDeregistered(h.logger, runID, "node")
}

// OnNodeError deregisters a failed node run. No extraction, no emission.
func (h *Handler) OnNodeError(ctx context.Context, runID string, err error) {
	h.deregister(ctx, runID, "node")
}

// newRunMeta splits the checkpoint namespace and snapshots the metadata
// record.
func (h *Handler) newRunMeta(runID string, metadata map[string]any) (*runMeta, error) {
	ns, ok := metadata[MetaKeyCheckpointNS].(string)
	if !ok {
		return nil, &ContractError{RunID: runID, Key: MetaKeyCheckpointNS}
	}
	snapshot := make(map[string]any, len(metadata))
	for k, v := range metadata {
		snapshot[k] = v
	}
	return &runMeta{
		namespace: strings.Split(ns, h.sep),
		metadata:  snapshot,
	}, nil
}

// register inserts or overwrites a registry entry. Caller holds h.mu.
func (h *Handler) register(runID string, meta *runMeta) {
	if h.runs == nil {
		h.runs = make(map[string]*runMeta)
	}
	h.runs[runID] = meta
}

// deregister removes a run. Removing an absent run is a defined no-op.
func (h *Handler) deregister(ctx context.Context, runID, kind string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.runs[runID]; !ok {
		return
	}
	delete(h.runs, runID)
	observability.LogRunDeregistered(h.logger, runID, kind)
}

// seedInputs records the identities of message-valued inputs, directly or one
// level inside non-text sequences. Caller holds h.mu.
func (h *Handler) seedInputs(inputs map[string]any) {
	for _, value := range inputs {
		if msg, ok := asMessage(value); ok {
			h.markSeen(msg.ID)
			continue
		}
		forEachSequenceItem(value, func(item any) {
			if msg, ok := asMessage(item); ok {
				h.markSeen(msg.ID)
			}
		})
	}
}

func (h *Handler) markSeen(id string) {
	if id == "" {
		return
	}
	if h.seen == nil {
		h.seen = make(map[string]struct{})
	}
	h.seen[id] = struct{}{}
}

// emit applies the dedupe policy, assigns a synthetic identity when absent,
// and forwards one chunk to the sink. Caller holds h.mu. Reports whether a
// chunk was forwarded.
func (h *Handler) emit(ctx context.Context, meta *runMeta, msg *message.Message, dedupe bool, kind string) bool {
	if dedupe {
		if _, seen := h.seen[msg.ID]; seen {
			h.metrics.RecordChunkDeduped(ctx)
			observability.LogChunkDeduped(h.logger, msg.ID)
			return false
		}
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	h.markSeen(msg.ID)

	h.sink(StreamChunk{
		Namespace: meta.namespace,
		Mode:      StreamModeMessages,
		Message:   msg,
		Metadata:  meta.metadata,
	})

	h.metrics.RecordChunkEmitted(ctx, kind)
	h.spans.AddChunkEvent(ctx, msg.ID, meta.namespace)
	observability.LogChunkEmitted(h.logger, msg.ID, kind, meta.namespace)
	return true
}

func hasTag(tags []string, marker string) bool {
	for _, t := range tags {
		if t == marker {
			return true
		}
	}
	return false
}

// filterTags drops engine-internal sequencing tags.
func filterTags(tags []string) []string {
	var filtered []string
	for _, t := range tags {
		if !strings.HasPrefix(t, TagSeqStepPrefix) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
