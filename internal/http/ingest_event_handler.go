package http

import (
	"encoding/json"
	"net/http"
	"time"

	"access-analytics/internal/collectors"
	"access-analytics/internal/models"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// ingestRequest is the wire shape of one observed access event. remoteAddr
// and userAgent fall back to the submitting request's own values so that
// edge proxies can post bare path/status records.
type ingestRequest struct {
	ActorID        string    `json:"actorId"`
	RemoteAddr     string    `json:"remoteAddr"`
	SessionID      string    `json:"sessionId"`
	Path           string    `json:"path"`
	Method         string    `json:"method"`
	StatusCode     int       `json:"statusCode"`
	ResponseTimeMS int64     `json:"responseTimeMs"`
	UserAgent      string    `json:"userAgent"`
	Country        string    `json:"country"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type ingestEventHandler struct {
	collector collectors.Collector
}

func NewIngestEventHandler(collector collectors.Collector) AppHttpHandler {
	return &ingestEventHandler{
		collector: collector,
	}
}

// Handle processes POST /events requests. Acceptance means the event sits in
// the current pending batch, not that it is persisted; hence 202.
func (h *ingestEventHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return errMalformedBody(err)
	}

	if req.RemoteAddr == "" {
		req.RemoteAddr = clientAddr(r)
	}
	if req.UserAgent == "" {
		req.UserAgent = r.UserAgent()
	}

	err := h.collector.Submit(r.Context(), &models.RawAccessEvent{
		ActorID:        req.ActorID,
		RemoteAddr:     req.RemoteAddr,
		SessionID:      req.SessionID,
		Path:           req.Path,
		Method:         req.Method,
		StatusCode:     req.StatusCode,
		ResponseTimeMS: req.ResponseTimeMS,
		UserAgent:      req.UserAgent,
		Country:        req.Country,
		OccurredAt:     req.OccurredAt,
	})
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusAccepted)
	return nil
}
