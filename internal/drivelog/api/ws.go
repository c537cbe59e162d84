package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"drivelog/internal/shared/middleware"
	"drivelog/internal/shared/util"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSManager fans live dashboard updates out to a user's open connections.
// A user may have several tabs or devices attached at once.
type WSManager struct {
	conns  map[string][]*websocket.Conn
	mu     sync.RWMutex
	logger *util.Logger
}

func NewWSManager(logger *util.Logger) *WSManager {
	return &WSManager{
		conns:  make(map[string][]*websocket.Conn),
		logger: logger,
	}
}

// DashboardWSHandler upgrades an authenticated request and parks the
// connection until the client goes away. All traffic is server to client.
func (m *WSManager) DashboardWSHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		util.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Error("DashboardWSHandler", err)
		return
	}

	m.addConn(userID, conn)
	m.logger.Info("DashboardWSHandler", "dashboard socket connected [user="+userID+"]")

	go func() {
		defer func() {
			m.removeConn(userID, conn)
			conn.Close()
			m.logger.Info("DashboardWSHandler", "dashboard socket closed [user="+userID+"]")
		}()
		for {
			// Drain client frames so pings are answered; any read error
			// means the peer is gone.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// SendToUser writes the payload as JSON to every open connection of the user.
// Dead connections are dropped on write failure.
func (m *WSManager) SendToUser(userID string, payload interface{}) {
	m.mu.RLock()
	conns := make([]*websocket.Conn, len(m.conns[userID]))
	copy(conns, m.conns[userID])
	m.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			m.removeConn(userID, conn)
			conn.Close()
		}
	}
}

func (m *WSManager) addConn(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[userID] = append(m.conns[userID], conn)
}

func (m *WSManager) removeConn(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns := m.conns[userID]
	for i, c := range conns {
		if c == conn {
			m.conns[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(m.conns[userID]) == 0 {
		delete(m.conns, userID)
	}
}
