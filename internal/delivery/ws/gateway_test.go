package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chirp/internal/domain/entity"
	"chirp/internal/domain/service"
	mockSvc "chirp/internal/mocks/service"
	mockUC "chirp/internal/mocks/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const readWait = 2 * time.Second

type gatewayFixture struct {
	tokenSvc *mockSvc.MockTokenService
	users    *mockUC.MockUserUsecase
	chats    *mockUC.MockChatUsecase
	srv      *httptest.Server
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()

	f := &gatewayFixture{
		tokenSvc: mockSvc.NewMockTokenService(t),
		users:    mockUC.NewMockUserUsecase(t),
		chats:    mockUC.NewMockChatUsecase(t),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway := NewGateway(f.tokenSvc, f.users, f.chats, logger)

	e := echo.New()
	e.GET("/ws/chats", gateway.Serve)
	f.srv = httptest.NewServer(e)
	t.Cleanup(f.srv.Close)

	return f
}

// allowToken wires the token mocks so that the bearer token resolves to the
// given user during the handshake.
func (f *gatewayFixture) allowToken(token string, user *entity.User) {
	header := "Bearer " + token
	f.tokenSvc.On("ExtractFromHeader", header, "Bearer").Return(token, nil)
	f.tokenSvc.On("Verify", token).
		Return(&service.Claims{Email: user.Email, Type: entity.TokenKindAccess.String()}, nil)
	f.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
}

func (f *gatewayFixture) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws/chats"
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(&Event{Event: event, Data: payload}))
}

func readEvent(t *testing.T, conn *websocket.Conn) *Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readWait)))

	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))

	return &ev
}

func readException(t *testing.T, conn *websocket.Conn) exceptionData {
	t.Helper()

	ev := readEvent(t, conn)
	require.Equal(t, eventException, ev.Event)

	var data exceptionData
	require.NoError(t, json.Unmarshal(ev.Data, &data))

	return data
}

// enterChat joins the rooms and waits for the join to be processed by
// provoking a synchronous exception on the same connection.
func enterChat(t *testing.T, conn *websocket.Conn, chatIDs []int64) {
	t.Helper()

	sendEvent(t, conn, eventEnterChat, enterChatData{ChatIDs: chatIDs})
	require.NoError(t, conn.WriteJSON(&Event{Event: "sync"}))
	assert.Equal(t, "UNKNOWN_EVENT", readException(t, conn).Code)
}

func TestServe_RejectsWrongTokenKind(t *testing.T) {
	f := newGatewayFixture(t)

	f.tokenSvc.On("ExtractFromHeader", "Bearer refresh-token", "Bearer").Return("refresh-token", nil)
	f.tokenSvc.On("Verify", "refresh-token").
		Return(&service.Claims{Email: "gopher@example.com", Type: entity.TokenKindRefresh.String()}, nil)

	wsURL := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws/chats"
	header := http.Header{}
	header.Set("Authorization", "Bearer refresh-token")

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Nil(t, conn)
	resp.Body.Close()
}

func TestGateway_EnterUnknownChat(t *testing.T) {
	f := newGatewayFixture(t)
	user := &entity.User{ID: 7, Email: "gopher@example.com", Role: entity.RoleUser}
	f.allowToken("tok", user)
	f.chats.On("ChatExists", mock.Anything, int64(99)).Return(false, nil)

	conn := f.dial(t, "tok")
	sendEvent(t, conn, eventEnterChat, enterChatData{ChatIDs: []int64{99}})

	exc := readException(t, conn)
	assert.Equal(t, "CHAT_NOT_FOUND", exc.Code)
	assert.Contains(t, exc.Message, "99")
}

func TestGateway_MalformedFrame(t *testing.T) {
	f := newGatewayFixture(t)
	user := &entity.User{ID: 7, Email: "gopher@example.com", Role: entity.RoleUser}
	f.allowToken("tok", user)

	conn := f.dial(t, "tok")
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not-json")))

	assert.Equal(t, "INVALID_EVENT", readException(t, conn).Code)
}

func TestGateway_BroadcastReachesOtherMembers(t *testing.T) {
	f := newGatewayFixture(t)
	alice := &entity.User{ID: 1, Email: "alice@example.com", Role: entity.RoleUser}
	bob := &entity.User{ID: 2, Email: "bob@example.com", Role: entity.RoleUser}
	f.allowToken("tok-alice", alice)
	f.allowToken("tok-bob", bob)
	f.chats.On("ChatExists", mock.Anything, int64(1)).Return(true, nil)

	message := &entity.ChatMessage{ID: 10, ChatID: 1, AuthorID: 2, Message: "hi"}
	f.chats.On("CreateMessage", mock.Anything, int64(1), int64(2), "hi").Return(message, nil)

	aliceConn := f.dial(t, "tok-alice")
	bobConn := f.dial(t, "tok-bob")
	enterChat(t, aliceConn, []int64{1})
	enterChat(t, bobConn, []int64{1})

	sendEvent(t, bobConn, eventSendMessage, sendMessageData{ChatID: 1, Message: "hi"})

	ev := readEvent(t, aliceConn)
	require.Equal(t, eventReceiveMessage, ev.Event)

	var received entity.ChatMessage
	require.NoError(t, json.Unmarshal(ev.Data, &received))
	assert.Equal(t, int64(10), received.ID)
	assert.Equal(t, "hi", received.Message)

	// The sender does not get their own message echoed back.
	require.NoError(t, bobConn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := bobConn.ReadMessage()
	var netErr interface{ Timeout() bool }
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}
