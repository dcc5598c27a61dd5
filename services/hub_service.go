package services

import (
	"encoding/json"
	"log"

	"yatube/models"
)

type HubService struct {
	hub *models.Hub
}

func NewHubService() *HubService {
	hub := models.NewHub()
	service := &HubService{hub: hub}

	go service.Run()

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

// Run owns the client set; every mutation goes through the hub channels.
func (h *HubService) Run() {
	for {
		select {
		case client := <-h.hub.Register:
			h.registerClient(client)

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case event := <-h.hub.Broadcast:
			h.deliver(event)
		}
	}
}

func (h *HubService) registerClient(client *models.Client) {
	h.hub.Clients[client] = true
	log.Printf("Feed client %s registered (group %q)", client.ID, client.Group)

	welcome, err := json.Marshal(models.WSMessage{
		Type:     "client_connected",
		Data:     map[string]string{"group": client.Group},
		ClientID: client.ID,
	})
	if err != nil {
		log.Printf("Error marshaling 'client_connected' message: %v", err)
		return
	}
	client.Send <- welcome
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; ok {
		delete(h.hub.Clients, client)
		close(client.Send)
		log.Printf("Feed client %s unregistered", client.ID)
	}
}

func (h *HubService) deliver(event models.FeedEvent) {
	for client := range h.hub.Clients {
		if !client.Wants(event.Group) {
			continue
		}
		select {
		case client.Send <- event.Payload:
		default:
			close(client.Send)
			delete(h.hub.Clients, client)
		}
	}
}

// PublishPost announces a new post to live feed subscribers.
func (h *HubService) PublishPost(post *models.Post) {
	wsMessage := models.WSMessage{
		Type: "post_created",
		Data: post.Response(),
	}

	messageBytes, err := json.Marshal(wsMessage)
	if err != nil {
		log.Printf("Error marshaling WebSocket message: %v", err)
		return
	}

	event := models.FeedEvent{Payload: messageBytes}
	if post.Group != nil {
		event.Group = post.Group.Slug
	}

	select {
	case h.hub.Broadcast <- event:
	default:
		log.Printf("Feed broadcast queue full, dropping post %d", post.ID)
	}
}
