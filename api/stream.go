package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/hitroute/hitroute/raid/report"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// StreamMessage is one frame of the /ws/plan protocol.
// Type is "route" for every ranked route, then "done"; "error" ends a failed run.
type StreamMessage struct {
	Type      string        `json:"type"`
	RunID     string        `json:"run_id,omitempty"`
	Route     *report.Route `json:"route,omitempty"`
	Evaluated int           `json:"evaluated,omitempty"`
	Unique    int           `json:"unique,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// handlePlanStream reads plan requests from the socket and answers each with
// every ranked route, best first, followed by a done frame.
func (s *Service) handlePlanStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close() //nolint:errcheck // best-effort close

	for {
		_, body, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.Debugf("websocket read: %v", err)
			}
			return
		}
		if err := s.streamPlan(r, conn, body); err != nil {
			logrus.Debugf("websocket write: %v", err)
			return
		}
	}
}

func (s *Service) streamPlan(r *http.Request, conn *websocket.Conn, body []byte) error {
	req, err := DecodePlanRequest(body, s.defaults)
	if err != nil {
		return conn.WriteJSON(StreamMessage{Type: "error", Error: err.Error()})
	}
	solutions, result, err := s.Plan(r.Context(), req)
	if err != nil {
		return conn.WriteJSON(StreamMessage{Type: "error", Error: err.Error()})
	}
	for _, route := range result.Ranked {
		rr := report.BuildRoute(route)
		if err := conn.WriteJSON(StreamMessage{Type: "route", RunID: solutions.RunID, Route: &rr}); err != nil {
			return err
		}
	}
	return conn.WriteJSON(StreamMessage{
		Type:      "done",
		RunID:     solutions.RunID,
		Evaluated: result.Evaluated,
		Unique:    len(result.Ranked),
	})
}
