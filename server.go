package main

import (
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const (
	qrSize        = 256
	topRunsLimit  = 10
	topRunsMaxCap = 100
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// statsResponse is the body of /api/stats
type statsResponse struct {
	Sessions int            `json:"sessions"`
	Clients  int            `json:"clients"`
	Conns    int            `json:"conns"`
	Events   map[string]int `json:"events,omitempty"`
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SetupRoutes configures HTTP routes
func SetupRoutes(hub *Hub, clientDir string, tickRate int) *http.ServeMux {
	mux := http.NewServeMux()

	// Serve static files with no-cache so browsers always revalidate
	fs := http.FileServer(http.Dir(clientDir))
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		if r.URL.Path == "/" {
			http.ServeFile(w, r, filepath.Join(clientDir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	}))

	// WebSocket endpoint: one private run per connection
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		if !hub.CanAccept(ip) {
			http.Error(w, "too many connections", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.log.Warn("upgrade error", zap.String("ip", ip), zap.Error(err))
			return
		}

		client := NewClient(hub, conn, ip)
		sess := hub.sessions.CreateSession(client)
		if sess == nil {
			data, _ := json.Marshal(Envelope{T: MsgError, Data: ErrorMsg{Msg: "too many active sessions"}})
			conn.WriteMessage(websocket.TextMessage, data)
			conn.Close()
			return
		}
		client.session = sess

		hub.TrackConnect(ip)
		hub.register <- client
		client.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{SessionID: sess.ID, TickRate: tickRate}})

		go client.WritePump()
		go client.ReadPump()
	})

	// QR code pointing a second screen at the renderer page
	mux.HandleFunc("/qr", func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Query().Get("url")
		if target == "" {
			scheme := "http"
			if r.TLS != nil {
				scheme = "https"
			}
			target = scheme + "://" + r.Host + "/"
		}
		png, err := qrcode.Encode(target, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr encode failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(png)
	})

	// Best finished runs
	mux.HandleFunc("/api/runs", func(w http.ResponseWriter, r *http.Request) {
		if hub.db == nil {
			http.Error(w, "run ledger disabled", http.StatusServiceUnavailable)
			return
		}
		limit := topRunsLimit
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = min(v, topRunsMaxCap)
		}
		runs, err := hub.db.TopRuns(limit)
		if err != nil {
			hub.log.Error("top runs", zap.Error(err))
			http.Error(w, "query failed", http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []RunRow{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(runs)
	})

	// Live host counters plus run-event totals from the ledger
	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		stats := statsResponse{
			Sessions: hub.sessions.Count(),
			Clients:  hub.ClientCount(),
			Conns:    hub.TotalConns(),
		}
		if hub.db != nil {
			counts, err := hub.db.EventCounts()
			if err != nil {
				hub.log.Error("event counts", zap.Error(err))
				http.Error(w, "query failed", http.StatusInternalServerError)
				return
			}
			stats.Events = counts
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	})

	return mux
}
