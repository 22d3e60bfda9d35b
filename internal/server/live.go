package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ayusman/sandow/internal/analyzer"
	"github.com/ayusman/sandow/internal/motion"
	"github.com/ayusman/sandow/internal/pose"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// LiveHandler scores pose snapshots over a WebSocket in real time.
type LiveHandler struct {
	logger *zap.Logger
}

// NewLiveHandler creates a new LiveHandler.
func NewLiveHandler(logger *zap.Logger) *LiveHandler {
	return &LiveHandler{logger: logger.Named("live")}
}

// liveFrame is one client message: a snapshot plus its scoring context.
type liveFrame struct {
	Category string         `json:"category"`
	Class    string         `json:"class"`
	Snapshot *pose.Snapshot `json:"snapshot"`
}

// liveReply answers one frame.
type liveReply struct {
	Feedback     *analyzer.Feedback `json:"feedback"`
	Steady       bool               `json:"steady"`
	Displacement float64            `json:"displacement"`
}

type liveError struct {
	Error string `json:"error"`
}

// ServeHTTP upgrades the connection and scores frames until the client
// disconnects. Malformed frames earn an error reply, not a close. Each
// frame is scored statelessly, so clients may drop frames freely; only
// the motion tracker carries state between frames, and it is per
// connection.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	tracker := motion.NewTracker(0)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame liveFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			if err := conn.WriteJSON(liveError{Error: "invalid frame: " + err.Error()}); err != nil {
				return
			}
			continue
		}

		a, err := analyzer.New(analyzer.Config{
			Category: pose.Category(frame.Category),
			Class:    pose.CompetitionClass(frame.Class),
		})
		if err != nil {
			if err := conn.WriteJSON(liveError{Error: err.Error()}); err != nil {
				return
			}
			continue
		}

		steady, displacement := tracker.Observe(frame.Snapshot)
		reply := liveReply{
			Feedback:     a.Analyze(frame.Snapshot),
			Steady:       steady,
			Displacement: displacement,
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}
