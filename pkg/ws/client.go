package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var ErrClosed = errors.New("connection is closed")

type MessageInfo struct {
	msg             []byte
	needCompression bool
}

type Client struct {
	Conn *websocket.Conn

	// R receives decompressed text messages from the peer. It is closed when
	// the connection is broken.
	R chan []byte
	W chan MessageInfo

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn) *Client {
	if conn == nil {
		return nil
	}

	c := &Client{
		Conn: conn,
		R:    make(chan []byte, 128),
		W:    make(chan MessageInfo, 128),
		done: make(chan struct{}),
	}

	go c.runReader()
	go c.runWriter()
	return c
}

func (c *Client) runReader() {
	defer close(c.R)
	defer c.Close()

	for {
		t, msg, err := c.Conn.ReadMessage()
		if err != nil {
			return
		}

		if t == websocket.CloseMessage {
			return
		}

		if t == websocket.TextMessage {
			c.R <- msg
		} else if t == websocket.BinaryMessage {
			originMsg, err := Decompress(msg)
			if err != nil {
				continue
			}

			c.R <- originMsg
		}
	}
}

func (c *Client) runWriter() {
	for {
		select {
		case <-c.done:
			return
		case msgInfo := <-c.W:
			msg := msgInfo.msg
			msgType := websocket.TextMessage
			if msgInfo.needCompression {
				var err error
				msg, err = Compress(msgInfo.msg)
				if err != nil {
					continue
				}
				msgType = websocket.BinaryMessage
			}

			if err := c.Conn.WriteMessage(msgType, msg); err != nil {
				c.Close()
				return
			}
		}
	}
}

// Write queues a message, it never blocks. A full queue drops the message.
func (c *Client) Write(msg []byte, needCompression bool) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.W <- MessageInfo{msg: msg, needCompression: needCompression}:
		return nil
	default:
		return errors.New("write queue is full")
	}
}

// Done is closed once the connection is closed.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.Conn.Close()
	})
}
