package service

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Worker serves snippet renders over NATS request-reply. Requests carry a
// JSON RenderRequest; replies carry a RenderResponse or an error envelope.
type Worker struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	engine  *Engine
	subject string
	logger  *slog.Logger
}

// NewWorker connects to NATS and prepares a worker on the given subject.
func NewWorker(url, subject string, engine *Engine, logger *slog.Logger) (*Worker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Worker{
		conn:    conn,
		engine:  engine,
		subject: subject,
		logger:  logger,
	}, nil
}

// Start subscribes to the request subject.
func (w *Worker) Start() error {
	sub, err := w.conn.Subscribe(w.subject, w.handle)
	if err != nil {
		return err
	}
	w.sub = sub
	w.logger.Info("NATS worker started", slog.String("subject", w.subject))
	return nil
}

// Stop drains the subscription and closes the connection.
func (w *Worker) Stop() {
	if w.sub != nil {
		_ = w.sub.Drain()
	}
	w.conn.Close()
}

func (w *Worker) handle(msg *nats.Msg) {
	var req RenderRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		w.respondError(msg, "invalid request: "+err.Error())
		return
	}
	if req.Document == "" {
		w.respondError(msg, "document is required")
		return
	}

	resp, err := w.engine.Render([]byte(req.Document), req.Format, req.Base)
	if err != nil {
		w.respondError(msg, err.Error())
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		w.respondError(msg, "encode response: "+err.Error())
		return
	}
	if err := msg.Respond(data); err != nil {
		w.logger.Warn("Failed to respond", slog.String("error", err.Error()))
	}
}

func (w *Worker) respondError(msg *nats.Msg, text string) {
	data, _ := json.Marshal(map[string]string{"error": text})
	if err := msg.Respond(data); err != nil {
		w.logger.Warn("Failed to respond", slog.String("error", err.Error()))
	}
}
