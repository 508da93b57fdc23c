package websocketPkg

import (
	"HealGolang/internal/entity"
	"HealGolang/pkg/utils"
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultEmotionURL = "ws://localhost:8000/api/v1/emotion/ws"

// IWebsocket classifies face crops through a remote emotion service. Each
// crop is sent as one binary JPEG message and answered by one JSON message.
type IWebsocket interface {
	Classify(ctx context.Context, face image.Image) (*entity.EmotionResult, error)
	IsConnected() bool
	Reconnect() error
	CloseConnections()
}

type emotionResponse struct {
	entity.EmotionResult
	Error string `json:"error,omitempty"`
}

type webSocketClient struct {
	url          string
	log          *logrus.Logger
	utils        utils.IUtils
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewAIWebSocketClient(url string, log *logrus.Logger, u utils.IUtils) IWebsocket {
	if url == "" {
		url = DefaultEmotionURL
	}
	client := &webSocketClient{
		url:          url,
		log:          log,
		utils:        u,
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go client.connectInBackground()

	return client
}

func (c *webSocketClient) connectInBackground() {
	if err := c.Reconnect(); err != nil {
		c.log.WithError(err).Warn("Initial connection to emotion service failed, will retry on demand")
		return
	}
	c.log.WithField("url", c.url).Info("Connected to emotion service")
}

func (c *webSocketClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *webSocketClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	c.log.WithField("url", c.url).Debug("Connecting to emotion service")

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.WithError(err).Warn("Error sending pong")
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *webSocketClient) CloseConnections() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *webSocketClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.WithError(err).Warn("Ping failed, marking emotion service connection as dead")
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

func (c *webSocketClient) getConnection() (*websocket.Conn, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		return conn, nil
	}

	if err := c.Reconnect(); err != nil {
		return nil, fmt.Errorf("cannot connect to emotion service: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, errors.New("not connected to emotion service")
	}
	return c.conn, nil
}

func (c *webSocketClient) drop(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
	conn.Close()
}

func (c *webSocketClient) deadline(ctx context.Context, d time.Duration) time.Time {
	t := time.Now().Add(d)
	if dl, ok := ctx.Deadline(); ok && dl.Before(t) {
		return dl
	}
	return t
}

func (c *webSocketClient) Classify(ctx context.Context, face image.Image) (*entity.EmotionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	frame, err := c.utils.EncodeJPEG(face)
	if err != nil {
		return nil, fmt.Errorf("error encoding face crop: %w", err)
	}

	conn, err := c.getConnection()
	if err != nil {
		return nil, err
	}

	// Cancelling ctx unblocks the read below by tearing the connection down.
	stop := context.AfterFunc(ctx, func() { c.drop(conn) })
	defer stop()

	c.mu.Lock()
	conn.SetWriteDeadline(c.deadline(ctx, c.writeTimeout))
	c.log.WithField("bytes", len(frame)).Debug("Sending face crop to emotion service")
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.mu.Unlock()
		c.drop(conn)
		return nil, fmt.Errorf("error sending face crop: %w", err)
	}
	conn.SetReadDeadline(c.deadline(ctx, c.readTimeout))
	c.mu.Unlock()

	_, message, err := conn.ReadMessage()
	if err != nil {
		c.drop(conn)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("error reading emotion message: %w", err)
	}

	c.mu.Lock()
	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})
	c.mu.Unlock()

	return parseResponse(message)
}

func parseResponse(message []byte) (*entity.EmotionResult, error) {
	var resp emotionResponse
	if err := json.Unmarshal(message, &resp); err != nil {
		return nil, fmt.Errorf("error unmarshaling emotion response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("emotion service: %s", resp.Error)
	}

	result := resp.EmotionResult
	return &result, nil
}
