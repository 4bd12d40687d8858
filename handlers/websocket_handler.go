package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/brackets"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub           *brackets.Hub
	leagueService services.LeagueService
	upgrader      websocket.Upgrader
	logger        *slog.Logger
}

// NewWebSocketHandler разрешает подключения только с allowedOrigins; пустой список разрешает все.
func NewWebSocketHandler(hub *brackets.Hub, ls services.LeagueService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:           hub,
		leagueService: ls,
		logger:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// ServeWs подписывает клиента на события лиги: /ws/leagues/{leagueID}
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParam(w, r, "leagueID")
	if !ok {
		return
	}
	if _, err := h.leagueService.GetLeague(r.Context(), leagueID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту
		h.logger.Warn("websocket upgrade failed", slog.String("league_id", leagueID), slog.Any("error", err))
		return
	}

	client := brackets.NewClient(h.hub, conn, brackets.LeagueRoom(leagueID))
	if !h.hub.Subscribe(client) {
		conn.Close()
		return
	}
	go client.WritePump()
	go client.ReadPump()
}
