// Package transcript is the server side of the speech-to-text input channel.
// The browser's recognizer sends each transcribed fragment as a text frame;
// every fragment is appended to the session's pending narrative, never
// replacing what is already there. The channel carries plain text only and
// knows nothing about audio.
package transcript

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	xlogger "InvestGuide/pkg/logger"
)

const (
	maxFragmentBytes = 8192
	readDeadline     = 5 * time.Minute
)

// Appender receives transcribed fragments for a session.
type Appender interface {
	Append(ctx context.Context, sessionID, text string) error
}

// Channel upgrades HTTP requests to websocket transcript streams.
type Channel struct {
	upgrader websocket.Upgrader
	appender Appender
	logger   *xlogger.Logger
}

// NewChannel creates a transcript channel backed by the given appender.
func NewChannel(appender Appender, logger *xlogger.Logger) *Channel {
	return &Channel{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin enforcement is handled by the CORS layer in front.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		appender: appender,
		logger:   logger,
	}
}

// Serve upgrades the connection and appends incoming text frames until the
// client disconnects or the session rejects an append.
func (c *Channel) Serve(w http.ResponseWriter, r *http.Request, sessionID string) error {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	conn.SetReadLimit(maxFragmentBytes)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("transcript channel closed unexpectedly",
					xlogger.String("session", sessionID),
					xlogger.Error(err),
				)
			}
			return nil
		}
		if msgType != websocket.TextMessage {
			continue
		}

		if err := c.appender.Append(r.Context(), sessionID, string(data)); err != nil {
			c.logger.Warn("transcript append rejected",
				xlogger.String("session", sessionID),
				xlogger.Error(err),
			)
			msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session unavailable")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return nil
		}
	}
}
