package ws

import (
	"net/http"
	"sync"

	"github.com/nori1700pm/ESD-FoodDelivery/services"
	"github.com/nori1700pm/ESD-FoodDelivery/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WalletHub fans wallet balance changes out to the user's open
// connections. It is the live-subscription half of the wallet store.
type WalletHub struct {
	clients    map[uint]map[*websocket.Conn]bool // userID -> set of clients
	broadcast  chan balanceUpdate
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	wallet     *services.WalletService
}

type subscription struct {
	Conn   *websocket.Conn
	UserID uint

	// balance snapshot Run sends right after registering, so the client
	// renders straight away; writes stay serialized in Run.
	Initial *float64
}

type balanceUpdate struct {
	UserID  uint    `json:"userId"`
	Balance float64 `json:"balance"`
}

func NewWalletHub(wallet *services.WalletService) *WalletHub {
	return &WalletHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan balanceUpdate),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		wallet:     wallet,
	}
}

// Publish implements services.BalanceNotifier; the wallet service calls
// it after every committed mutation.
func (h *WalletHub) Publish(userID uint, balance float64) {
	h.broadcast <- balanceUpdate{UserID: userID, Balance: balance}
}

func (h *WalletHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			if sub.Initial != nil {
				if err := sub.Conn.WriteJSON(balanceUpdate{UserID: sub.UserID, Balance: *sub.Initial}); err != nil {
					logrus.Warnf("ws write error: %v", err)
					sub.Conn.Close()
					delete(h.clients[sub.UserID], sub.Conn)
				}
			}
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.UserID][sub.Conn]; ok {
				delete(h.clients[sub.UserID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case upd := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[upd.UserID] {
				if err := conn.WriteJSON(upd); err != nil {
					logrus.Warnf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[upd.UserID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/wallet
func (h *WalletHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.Warnf("ws upgrade error: %v", err)
		return
	}

	sub := subscription{Conn: conn, UserID: userID}
	if balance, err := h.wallet.Init(userID); err == nil {
		sub.Initial = &balance
	}
	h.register <- sub

	go func() {
		defer func() { h.unregister <- sub }()
		for {
			// client never sends anything meaningful; reads just detect close
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
