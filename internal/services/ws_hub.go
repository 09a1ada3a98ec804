package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"photo-sharing-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	PhotoID string      `json:"photo_id,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// wsClient serializes writes; gorilla connections allow one writer at a time
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub tracks one live WebSocket connection per user and pushes events to it.
// A nil *Hub drops every event.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*wsClient
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*wsClient),
	}
}

// Register registers a new WebSocket connection for a user, closing any
// previous one
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, exists := h.connections[userID]; exists {
		existing.conn.Close()
	}
	h.connections[userID] = &wsClient{conn: conn}

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes conn if it is still the user's current connection
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, exists := h.connections[userID]; exists && client.conn == conn {
		client.conn.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends a message to a specific user
func (h *Hub) SendToUser(userID string, message WSMessage) error {
	if h == nil {
		return nil
	}

	h.mu.RLock()
	client, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := client.write(data); err != nil {
		h.Unregister(userID, client.conn)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// IsOnline checks if a user is online
func (h *Hub) IsOnline(userID string) bool {
	if h == nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[userID]
	return exists
}

// NotifyCommentAdded tells a photo owner someone commented on their photo
func (h *Hub) NotifyCommentAdded(ownerID string, comment models.CommentView) {
	if !h.IsOnline(ownerID) {
		return
	}
	message := WSMessage{
		Type:    "comment_added",
		PhotoID: comment.PhotoID,
		Data:    comment,
	}
	if err := h.SendToUser(ownerID, message); err != nil {
		log.Error().Err(err).Str("user_id", ownerID).Msg("Failed to notify comment")
	}
}

// NotifyPhotoUploaded echoes a finished upload to the uploader's other client
func (h *Hub) NotifyPhotoUploaded(ownerID string, photo models.PhotoView) {
	if !h.IsOnline(ownerID) {
		return
	}
	message := WSMessage{
		Type:    "photo_uploaded",
		PhotoID: photo.ID,
		Data:    photo,
	}
	if err := h.SendToUser(ownerID, message); err != nil {
		log.Error().Err(err).Str("user_id", ownerID).Msg("Failed to notify photo upload")
	}
}
