package websocket

import (
	"context"
	"encoding/json"

	"github.com/jumpa-app/jumpa/internal/pkg/constants"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
)

// handleSessionEnter brings the session up for the connected participant.
// The participant id always comes from the authenticated connection, never
// from the payload.
func (m *WebSocketManager) handleSessionEnter(client *models.WebSocketClient, data json.RawMessage) error {
	var req models.SessionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidFormat, "Invalid session request format")
	}
	req.ParticipantID = client.ParticipantID

	if err := m.sessionUC.EnterSession(context.Background(), req); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorSessionState, err.Error())
	}

	return m.pushState(client)
}

// handleSessionExit tears the session down
func (m *WebSocketManager) handleSessionExit(client *models.WebSocketClient) error {
	if err := m.sessionUC.ExitSession(context.Background()); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorSessionState, err.Error())
	}
	return m.pushState(client)
}

// handleChangeDestination re-points the session at a new destination
func (m *WebSocketManager) handleChangeDestination(client *models.WebSocketClient, data json.RawMessage) error {
	var req struct {
		Destination string `json:"destination"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidFormat, "Invalid destination format")
	}

	if err := m.sessionUC.ChangeDestination(context.Background(), req.Destination); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorSessionState, err.Error())
	}
	return m.pushState(client)
}

// handleChangeRole re-points the session at a new role
func (m *WebSocketManager) handleChangeRole(client *models.WebSocketClient, data json.RawMessage) error {
	var req struct {
		Role models.Role `json:"role"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidFormat, "Invalid role format")
	}

	if err := m.sessionUC.ChangeRole(context.Background(), req.Role); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorSessionState, err.Error())
	}
	return m.pushState(client)
}

// handleLocationUpdate feeds one raw fix into the location pipeline
func (m *WebSocketManager) handleLocationUpdate(client *models.WebSocketClient, data json.RawMessage) error {
	var fix models.Fix
	if err := json.Unmarshal(data, &fix); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidLocation, "Invalid location format")
	}

	m.sessionUC.ReportFix(context.Background(), fix)
	return nil
}

// handleAppState records a power/app-state transition
func (m *WebSocketManager) handleAppState(client *models.WebSocketClient, data json.RawMessage) error {
	var update models.AppStateUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		return m.manager.SendErrorMessage(client.Conn, constants.ErrorInvalidFormat, "Invalid app state format")
	}

	m.sessionUC.ReportAppState(context.Background(), update)
	return nil
}

// pushState sends the current session state to the client
func (m *WebSocketManager) pushState(client *models.WebSocketClient) error {
	state := m.sessionUC.State(context.Background())
	return m.manager.SendMessage(client.Conn, constants.EventSessionState, state)
}
