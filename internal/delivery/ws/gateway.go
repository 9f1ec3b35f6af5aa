// Package ws exposes the realtime chat gateway. Clients authenticate during
// the handshake with an access bearer token and then exchange JSON events.
package ws

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"chirp/internal/domain/entity"
	domainerrors "chirp/internal/domain/errors"
	"chirp/internal/domain/service"
	"chirp/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	eventEnterChat      = "enter_chat"
	eventCreateChat     = "create_chat"
	eventSendMessage    = "send_message"
	eventReceiveMessage = "receive_message"
	eventException      = "exception"

	schemeBearer = "Bearer"
)

// Event is the envelope every frame uses, in both directions.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type enterChatData struct {
	ChatIDs []int64 `json:"chatIds"`
}

type createChatData struct {
	UserIDs []int64 `json:"userIds"`
}

type sendMessageData struct {
	ChatID  int64  `json:"chatId"`
	Message string `json:"message"`
}

type exceptionData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Gateway upgrades connections, tracks room membership and fans messages out
// to the other members of a room.
type Gateway struct {
	tokenSvc service.TokenService
	users    usecase.UserUsecase
	chats    usecase.ChatUsecase
	logger   *slog.Logger

	upgrader websocket.Upgrader

	mu    sync.RWMutex
	rooms map[int64]map[*client]struct{}
}

// client is one authenticated websocket connection. Writes are serialized
// through writeMu because gorilla allows a single concurrent writer.
type client struct {
	conn    *websocket.Conn
	user    *entity.User
	writeMu sync.Mutex
}

// NewGateway is the constructor for Gateway.
func NewGateway(
	tokenSvc service.TokenService,
	users usecase.UserUsecase,
	chats usecase.ChatUsecase,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		tokenSvc: tokenSvc,
		users:    users,
		chats:    chats,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		rooms: make(map[int64]map[*client]struct{}),
	}
}

// Serve authenticates the handshake and runs the connection read loop. Auth
// failures surface as a regular HTTP error before the upgrade, so the client
// never gets a socket.
func (g *Gateway) Serve(c echo.Context) error {
	user, err := g.authenticate(c)
	if err != nil {
		return err
	}

	conn, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the handshake failure.
		return nil
	}

	cl := &client{conn: conn, user: user}
	g.logger.Info("websocket connected", slog.Int64("userID", user.ID))

	g.readLoop(c, cl)

	return nil
}

func (g *Gateway) authenticate(c echo.Context) (*entity.User, error) {
	token, err := g.tokenSvc.ExtractFromHeader(c.Request().Header.Get(echo.HeaderAuthorization), schemeBearer)
	if err != nil {
		return nil, err
	}

	claims, err := g.tokenSvc.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.Kind() != entity.TokenKindAccess {
		return nil, domainerrors.ErrNotAccessToken
	}

	user, err := g.users.GetByEmail(c.Request().Context(), claims.Email)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid
	}

	return user, nil
}

func (g *Gateway) readLoop(c echo.Context, cl *client) {
	defer func() {
		g.leaveAll(cl)
		_ = cl.conn.Close()
		g.logger.Info("websocket disconnected", slog.Int64("userID", cl.user.ID))
	}()

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Warn("websocket read failed", slog.Any("error", err))
			}

			return
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			g.sendException(cl, "INVALID_EVENT", "malformed event frame")

			continue
		}

		g.dispatch(c, cl, &ev)
	}
}

func (g *Gateway) dispatch(c echo.Context, cl *client, ev *Event) {
	ctx := c.Request().Context()

	switch ev.Event {
	case eventEnterChat:
		var data enterChatData
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			g.sendException(cl, "INVALID_EVENT", "malformed enter_chat payload")

			return
		}

		for _, chatID := range data.ChatIDs {
			exists, err := g.chats.ChatExists(ctx, chatID)
			if err != nil {
				g.sendError(cl, err)

				return
			}
			if !exists {
				g.sendException(cl, "CHAT_NOT_FOUND", fmt.Sprintf("chat does not exist: %d", chatID))

				return
			}
		}

		g.join(cl, data.ChatIDs)
	case eventCreateChat:
		var data createChatData
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			g.sendException(cl, "INVALID_EVENT", "malformed create_chat payload")

			return
		}

		if _, err := g.chats.CreateChat(ctx, data.UserIDs); err != nil {
			g.sendError(cl, err)
		}
	case eventSendMessage:
		var data sendMessageData
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			g.sendException(cl, "INVALID_EVENT", "malformed send_message payload")

			return
		}

		message, err := g.chats.CreateMessage(ctx, data.ChatID, cl.user.ID, data.Message)
		if err != nil {
			g.sendError(cl, err)

			return
		}

		g.broadcast(data.ChatID, cl, message)
	default:
		g.sendException(cl, "UNKNOWN_EVENT", "unsupported event: "+ev.Event)
	}
}

func (g *Gateway) join(cl *client, chatIDs []int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, chatID := range chatIDs {
		room, ok := g.rooms[chatID]
		if !ok {
			room = make(map[*client]struct{})
			g.rooms[chatID] = room
		}
		room[cl] = struct{}{}
	}
}

func (g *Gateway) leaveAll(cl *client) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for chatID, room := range g.rooms {
		delete(room, cl)
		if len(room) == 0 {
			delete(g.rooms, chatID)
		}
	}
}

// broadcast delivers the message to every room member except the sender.
func (g *Gateway) broadcast(chatID int64, sender *client, message *entity.ChatMessage) {
	g.mu.RLock()
	members := make([]*client, 0, len(g.rooms[chatID]))
	for member := range g.rooms[chatID] {
		if member != sender {
			members = append(members, member)
		}
	}
	g.mu.RUnlock()

	for _, member := range members {
		g.send(member, &Event{Event: eventReceiveMessage}, message)
	}
}

func (g *Gateway) sendError(cl *client, err error) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		g.sendException(cl, appErr.ErrorCode(), appErr.Message())

		return
	}

	g.logger.Error("websocket handler failed", slog.Any("error", err))
	g.sendException(cl, domainerrors.ErrInternalError.ErrorCode(), domainerrors.ErrInternalError.Message())
}

func (g *Gateway) sendException(cl *client, code, message string) {
	g.send(cl, &Event{Event: eventException}, exceptionData{Code: code, Message: message})
}

func (g *Gateway) send(cl *client, ev *Event, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		g.logger.Error("websocket marshal failed", slog.Any("error", err))

		return
	}
	ev.Data = payload

	cl.writeMu.Lock()
	defer cl.writeMu.Unlock()

	if err := cl.conn.WriteJSON(ev); err != nil {
		g.logger.Warn("websocket write failed", slog.Any("error", err))
	}
}
