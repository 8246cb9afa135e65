package websocket

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/jumpa-app/jumpa/internal/pkg/constants"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	pkgws "github.com/jumpa-app/jumpa/internal/pkg/websocket"
	"github.com/jumpa-app/jumpa/services/session"
)

// WebSocketManager serves the mobile app's live connection: session commands
// and raw fixes in, proximity alerts and state snapshots out.
type WebSocketManager struct {
	sessionUC session.SessionUC
	manager   *pkgws.Manager
	logger    *logger.ZapLogger
}

// NewWebSocketManager creates the session WebSocket surface
func NewWebSocketManager(
	sessionUC session.SessionUC,
	manager *pkgws.Manager,
	l *logger.ZapLogger,
) *WebSocketManager {
	return &WebSocketManager{
		sessionUC: sessionUC,
		manager:   manager,
		logger:    l,
	}
}

// HandleWebSocket handles new WebSocket connections
func (m *WebSocketManager) HandleWebSocket(c echo.Context) error {
	return m.manager.HandleConnection(c, m.handleClientConnection)
}

// handleClientConnection manages the client's WebSocket connection
func (m *WebSocketManager) handleClientConnection(client *models.WebSocketClient, ws *websocket.Conn) error {
	client.Conn = ws
	m.manager.AddClient(client)
	defer m.manager.RemoveClient(client.ParticipantID)

	return m.messageLoop(client)
}

// messageLoop handles incoming WebSocket messages
func (m *WebSocketManager) messageLoop(client *models.WebSocketClient) error {
	for {
		_, msg, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.logger.Warn("websocket read failed",
					logger.String("participant_id", client.ParticipantID),
					logger.Err(err))
			}
			return err
		}

		if err := m.handleMessage(client, msg); err != nil {
			m.logger.Warn("failed to handle websocket message",
				logger.String("participant_id", client.ParticipantID),
				logger.Err(err))
		}
	}
}

// NotifyClient pushes an event to the participant's connection
func (m *WebSocketManager) NotifyClient(participantID string, event string, data interface{}) {
	m.manager.NotifyClient(participantID, event, data)
}

// handleMessage dispatches one incoming event
func (m *WebSocketManager) handleMessage(client *models.WebSocketClient, msg []byte) error {
	var wsMsg models.WSMessage
	if err := json.Unmarshal(msg, &wsMsg); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidFormat, "Invalid message format")
	}

	switch wsMsg.Event {
	case constants.EventSessionEnter:
		return m.handleSessionEnter(client, wsMsg.Data)
	case constants.EventSessionExit:
		return m.handleSessionExit(client)
	case constants.EventChangeDestination:
		return m.handleChangeDestination(client, wsMsg.Data)
	case constants.EventChangeRole:
		return m.handleChangeRole(client, wsMsg.Data)
	case constants.EventLocationUpdate:
		return m.handleLocationUpdate(client, wsMsg.Data)
	case constants.EventAppState:
		return m.handleAppState(client, wsMsg.Data)
	case constants.EventPing:
		return m.manager.SendMessage(client.Conn, constants.EventPong, nil)
	default:
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidFormat, "Unknown event type")
	}
}
