package models

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan FeedEvent
	Register   chan *Client
	Unregister chan *Client
}

// Client is one live feed subscriber. An empty Group receives every post.
type Client struct {
	ID    string
	Hub   *Hub
	Conn  *websocket.Conn
	Send  chan []byte
	Group string
}

// FeedEvent is an encoded message plus the group slug it belongs to, if any.
type FeedEvent struct {
	Payload []byte
	Group   string
}

type WSMessage struct {
	Type     string      `json:"type"`
	Data     interface{} `json:"data"`
	ClientID string      `json:"client_id,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan FeedEvent, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, group string) *Client {
	return &Client{
		ID:    uuid.New().String(),
		Hub:   hub,
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Group: group,
	}
}

func (c *Client) Wants(group string) bool {
	return c.Group == "" || c.Group == group
}
