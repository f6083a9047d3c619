package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/imartinez/fronton-league/league"
	"github.com/imartinez/fronton-league/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin once it is deployed.
		return true
	},
}

type WebSocketHandler struct {
	hub             *league.Hub
	categoryService services.CategoryService
}

func NewWebSocketHandler(hub *league.Hub, categoryService services.CategoryService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:             hub,
		categoryService: categoryService,
	}
}

// ServeWs subscribes a client to live updates for one category.
// Clients connect to /ws/categories/{categoryID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.categoryService.GetCategoryByID(r.Context(), categoryID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client with an HTTP error.
		log.Printf("failed to upgrade connection for category %d: %v", categoryID, err)
		return
	}

	client := &league.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: league.CategoryRoom(categoryID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
