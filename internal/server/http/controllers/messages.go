package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NeilDarach/msg-q/internal/queue"
	"github.com/NeilDarach/msg-q/internal/runtime"
	messagesvc "github.com/NeilDarach/msg-q/internal/services/messages"
	logpkg "github.com/NeilDarach/msg-q/pkg/log"
)

// MessagesController handles queue and message HTTP endpoints.
//
// It decodes HTTP requests into the engine's string-keyed parameter
// contract, so the same request shape works from a query string, a JSON
// body, or CLI flags.
type MessagesController struct {
	rt     *runtime.Runtime
	svc    *messagesvc.Service
	logger logpkg.Logger
}

// NewMessagesController creates a new messages controller.
func NewMessagesController(rt *runtime.Runtime, svc *messagesvc.Service, logger logpkg.Logger) *MessagesController {
	if logger == nil {
		logger = logpkg.NewLogger(logpkg.WithLevel(logpkg.InfoLevel)).WithComponent("http")
	}
	return &MessagesController{rt: rt, svc: svc, logger: logger}
}

// RegisterRoutes registers queue and message routes with the given mux.
func (c *MessagesController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/queues", c.handleListQueues)
	mux.HandleFunc("/api/summary", c.handleSummary)
	mux.HandleFunc("/api/messages/", c.handleMessages)
}

// handleListQueues lists all queue names, sorted.
// GET /api/queues
func (c *MessagesController) handleListQueues(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	names := c.svc.ListQueues(r.Context())
	list := make([]string, 0, len(names))
	for _, n := range names {
		list = append(list, n.String())
	}
	writeJSON(w, http.StatusOK, list)
}

// handleSummary reports queue depths, store-wide or for one queue.
// GET /api/summary
// GET /api/summary?queue_name=<name>
func (c *MessagesController) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if raw := r.URL.Query().Get("queue_name"); raw != "" {
		name, err := queue.ParseQueueName(raw)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		summary, err := c.rt.Store().Summary(name)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []queueSummaryResponseData{summaryResponse(summary)})
		return
	}

	summaries := c.svc.SummaryAll(r.Context())
	data := make([]queueSummaryResponseData, 0, len(summaries))
	for _, s := range summaries {
		data = append(data, summaryResponse(s))
	}
	writeJSON(w, http.StatusOK, data)
}

// handleMessages dispatches on method for /api/messages/{queue}: POST
// creates a message, GET runs a select action described by the query
// string.
func (c *MessagesController) handleMessages(w http.ResponseWriter, r *http.Request) {
	rawName := strings.TrimPrefix(r.URL.Path, "/api/messages/")
	if rawName == "" || strings.Contains(rawName, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPost:
		c.handleCreate(w, r, rawName)
	case http.MethodGet:
		c.handleSelect(w, r, rawName)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleCreate creates a message in the named queue.
// POST /api/messages/{queue} with {content, correlation_id?, expiry_seconds?}
func (c *MessagesController) handleCreate(w http.ResponseWriter, r *http.Request, rawName string) {
	name, err := queue.ParseQueueName(rawName)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	var body createMessageRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := queue.CreateMessageRequest{Content: body.Content}
	if body.CorrelationID != nil {
		cid, err := uuid.Parse(*body.CorrelationID)
		if err != nil {
			writeEngineError(w, &queue.InvalidParameterError{Field: "correlation_id"})
			return
		}
		req.CorrelationID = &cid
	}
	if body.ExpirySeconds != nil {
		req.Expiry = time.Duration(*body.ExpirySeconds) * time.Second
	}

	msg, err := c.svc.CreateMessage(r.Context(), name, req)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createMessageResponseData{ID: msg.ID.String()})
}

// handleSelect runs a retrieval action against the named queue. The query
// string is handed to the engine verbatim as its parameter map; action=info
// yields a queue summary instead of a message.
// GET /api/messages/{queue}?action=take&id=...&lease_seconds=...
func (c *MessagesController) handleSelect(w http.ResponseWriter, r *http.Request, rawName string) {
	params := make(map[string]string, len(r.URL.Query())+1)
	for key, values := range r.URL.Query() {
		params[key] = values[0]
	}
	params["queue_name"] = rawName

	opts, err := queue.ParseSelectOptions(params, c.rt.Clock())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if opts.Action == queue.ActionInfo {
		summary, err := c.svc.Summary(r.Context(), opts)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summaryResponse(summary))
		return
	}

	msg, err := c.svc.Select(r.Context(), opts)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse(msg))
}
