package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS Client Connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// StockChanged implements ledger.Notifier: every committed stock batch is
// pushed to connected dashboard clients. The send is synchronous onto the
// buffered broadcast channel so successive updates keep their order; when
// the buffer is full the event is dropped rather than blocking the ledger.
func (h *Hub) StockChanged(quantities map[uuid.UUID]int) {
	byID := make(map[string]int, len(quantities))
	for id, qty := range quantities {
		byID[id.String()] = qty
	}
	payload := map[string]interface{}{
		"type":       "stock_update",
		"quantities": byID,
	}
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		log.Println("WS broadcast buffer full, dropping stock update")
	}
}
