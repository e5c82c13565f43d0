package mqtt

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/netip"
	"os"
	"runtime"
	"time"

	"github.com/soypat/lneto/tcp"
	"github.com/soypat/lneto/x/xnet"
	mqtt "github.com/soypat/natiu-mqtt"
	"golang.org/x/time/rate"

	"github.com/harveysanders/sailtrack/sailmonitor/display"
	"github.com/harveysanders/sailtrack/sailmonitor/monitor"
)

var pubFlags, _ = mqtt.NewPublishFlags(mqtt.QoS0, false, false)

// Stack is the network stack the client dials through, as set up by
// cyw43439.Setup.
type Stack interface {
	LnetoStack() *xnet.StackAsync
}

// Client subscribes to telemetry topics and publishes device status.
type Client struct {
	ID             string
	Timeout        time.Duration
	TCPBufSize     int
	Logger         *slog.Logger
	StatusInterval time.Duration // Period between status publishes.
	StatusTopic    string
	Username       string // MQTT broker username (optional)
	Password       string // MQTT broker password (optional, requires Username)

	dropped rate.Sometimes
}

// ConnectAndSubscribe connects to the MQTT broker, subscribes to topics and
// forwards every decoded message on telemetry. The status returned by
// statusFn is published every StatusInterval. Link state is reported on
// footer. It reconnects forever and only returns on setup errors.
// The stack is provided from main.go where WiFi/DHCP are set up.
func (c *Client) ConnectAndSubscribe(
	stack Stack,
	addr string,
	topics []string,
	telemetry chan<- monitor.Telemetry,
	footer chan<- string,
	statusFn func() Status,
) error {
	const (
		pollTime     = 5 * time.Millisecond
		readDeadline = 20 * time.Millisecond
	)

	if len(topics) == 0 {
		return errors.New("no topics to subscribe to")
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.dropped.Interval = 10 * time.Second

	c.Logger.Info("MQTT address: " + addr)

	// Parse hostname and port from addr (e.g., "hostname:8883")
	mqttHost, portStr, err := splitHostPort(addr)
	if err != nil {
		return errors.New("parsing host:port from " + addr + ": " + err.Error())
	}
	port := parsePort(portStr)
	if port == 0 {
		return errors.New("invalid port in " + addr)
	}

	lnetoStack := stack.LnetoStack()
	rstack := lnetoStack.StackRetrying(pollTime)

	// Try to parse as IP first, otherwise DNS lookup
	var mqttAddr netip.Addr
	if parsedAddr, err := netip.ParseAddr(mqttHost); err == nil {
		mqttAddr = parsedAddr
	} else {
		c.Logger.Info("dns:resolving " + mqttHost)
		addrs, err := rstack.DoLookupIP(mqttHost, 5*time.Second, 3)
		if err != nil {
			return errors.New("dns lookup for " + mqttHost + ": " + err.Error())
		}
		if len(addrs) == 0 {
			return errors.New("dns lookup for " + mqttHost + ": no addresses returned")
		}
		mqttAddr = addrs[0]
	}
	c.Logger.Info("resolved IP: " + mqttAddr.String())

	cfg := mqtt.ClientConfig{
		Decoder: mqtt.DecoderNoAlloc{UserBuffer: make([]byte, 4096)},
		OnPub:   c.onPublish(telemetry),
	}
	var varconn mqtt.VariablesConnect
	varconn.SetDefaultMQTT([]byte(c.ID))

	// Set authentication credentials if provided
	if c.Username != "" {
		varconn.Username = []byte(c.Username)
		if c.Password != "" {
			varconn.Password = []byte(c.Password)
		}
	}

	mqttClient := mqtt.NewClient(cfg)
	varsub := mqtt.VariablesSubscribe{TopicFilters: topicFilters(topics)}
	pubVar := mqtt.VariablesPublish{TopicName: []byte(c.StatusTopic)}

	// Configure TCP connection
	var conn tcp.Conn
	err = conn.Configure(tcp.ConnConfig{
		RxBuf:             make([]byte, c.TCPBufSize),
		TxBuf:             make([]byte, c.TCPBufSize),
		TxPacketQueueSize: 3,
	})
	if err != nil {
		return errors.New("tcp configure:" + err.Error())
	}

	closeConn := func(reason string) {
		c.Logger.Error("tcpconn:closing", slog.String("reason", reason))
		conn.Close()
		// Wait for connection to close
		for i := 0; i < 50 && !conn.State().IsClosed(); i++ {
			time.Sleep(100 * time.Millisecond)
		}
		conn.Abort()
	}

	serverAddr := netip.AddrPortFrom(mqttAddr, port)

	// Connection loop for TCP+MQTT.
	for {
		// Use stack's PRNG for random port
		localPort := uint16(lnetoStack.Prand32()>>17) + 1024
		c.Logger.Info("socket:dialing", slog.Uint64("localPort", uint64(localPort)))
		display.SendStatus(footer, "TCP "+addr)

		// Dial TCP using the retrying stack (handles handshake with retries)
		err = rstack.DoDialTCP(&conn, localPort, serverAddr, 10*time.Second, 3)
		if err != nil {
			c.Logger.Error("socket:dial-failed", slog.String("err", err.Error()))
			display.SendStatus(footer, "TCP dial failed")
			closeConn("dial failed: " + err.Error())
			time.Sleep(2 * time.Second)
			continue
		}

		c.Logger.Info("tcp:connected", slog.String("state", conn.State().String()))

		// We start MQTT connect with a deadline on the socket.
		c.Logger.Info("mqtt:start-connecting")
		display.SendStatus(footer, "MQTT connecting")
		conn.SetDeadline(time.Now().Add(c.Timeout))
		err = mqttClient.StartConnect(&conn, &varconn)
		if err != nil {
			c.Logger.Error("mqtt:start-connect-failed", slog.String("reason", err.Error()))
			display.SendStatus(footer, "MQTT connect failed")
			closeConn("connect failed")
			continue
		}
		retries := 50
		for retries > 0 && !mqttClient.IsConnected() {
			time.Sleep(100 * time.Millisecond)
			err = mqttClient.HandleNext()
			if err != nil {
				c.Logger.Error("mqtt:handle-next-failed", slog.String("err", err.Error()))
			}
			retries--
		}
		if !mqttClient.IsConnected() {
			c.Logger.Error("mqtt:connect-failed", slog.Any("reason", mqttClient.Err()))
			display.SendStatus(footer, "MQTT timed out")
			closeConn("connect timed out")
			continue
		}

		varsub.PacketIdentifier = uint16(lnetoStack.Prand32())
		conn.SetDeadline(time.Now().Add(c.Timeout))
		err = mqttClient.StartSubscribe(varsub)
		if err != nil {
			c.Logger.Error("mqtt:start-subscribe-failed", slog.String("reason", err.Error()))
			closeConn("subscribe failed")
			continue
		}
		retries = 50
		for retries > 0 && mqttClient.AwaitingSuback() {
			time.Sleep(100 * time.Millisecond)
			err = mqttClient.HandleNext()
			if err != nil {
				c.Logger.Error("mqtt:handle-next-failed", slog.String("err", err.Error()))
			}
			retries--
		}
		if mqttClient.AwaitingSuback() {
			c.Logger.Error("mqtt:subscribe-failed", slog.Any("reason", mqttClient.Err()))
			display.SendStatus(footer, "MQTT subscribe failed")
			closeConn("subscribe timed out")
			continue
		}
		c.Logger.Info("mqtt:subscribed", slog.Int("topics", len(topics)))
		display.SendStatus(footer, "MQTT OK")

		statusTicker := time.NewTicker(c.StatusInterval)
		for mqttClient.IsConnected() {
			select {
			case <-statusTicker.C:
				// statusFn blocks while the battery is sampled.
				payload, err := json.Marshal(statusFn())
				if err != nil {
					c.Logger.Error("mqtt:marshal-failed", slog.Any("reason", err))
					continue
				}
				conn.SetDeadline(time.Now().Add(c.Timeout))
				pubVar.PacketIdentifier = uint16(lnetoStack.Prand32())
				err = mqttClient.PublishPayload(pubFlags, pubVar, payload)
				if err != nil {
					c.Logger.Error("mqtt:publish-failed", slog.Any("reason", err))
					continue
				}
				c.Logger.Info("mqtt:status-published",
					slog.Uint64("packetID", uint64(pubVar.PacketIdentifier)),
				)
			default:
				// Short deadline so an idle broker does not stall the status ticker.
				conn.SetDeadline(time.Now().Add(readDeadline))
				err = mqttClient.HandleNext()
				if err != nil && !errors.Is(err, os.ErrDeadlineExceeded) {
					c.Logger.Error("mqtt:handle-next-failed", slog.String("err", err.Error()))
				}
				// Release the thread so other go routines can run.
				// We only need to do this because TinyGo runs on a single core
				// https://tinygo.org/docs/guides/tips-n-tricks/
				runtime.Gosched()
			}
		}
		statusTicker.Stop()

		c.Logger.Error("mqtt:disconnected", slog.Any("reason", mqttClient.Err()))
		display.SendStatus(footer, "MQTT reconnecting")
		closeConn("disconnected")
		runtime.Gosched()
	}
}

// onPublish returns the OnPub callback: it decodes each payload as a JSON
// object and queues it for the render loop without blocking.
func (c *Client) onPublish(telemetry chan<- monitor.Telemetry) func(mqtt.Header, mqtt.VariablesPublish, io.Reader) error {
	return func(_ mqtt.Header, varPub mqtt.VariablesPublish, r io.Reader) error {
		topic := string(varPub.TopicName)
		payload, err := decodePayload(r)
		io.Copy(io.Discard, r)
		if err != nil {
			c.Logger.Debug("mqtt:decode-failed", slog.String("topic", topic), slog.String("err", err.Error()))
			return nil
		}
		if !enqueue(telemetry, monitor.Telemetry{Topic: topic, Payload: payload}) {
			c.dropped.Do(func() {
				c.Logger.Warn("mqtt:telemetry-dropped", slog.String("topic", topic))
			})
		}
		return nil
	}
}

// decodePayload reads a JSON document. Numbers are kept as json.Number so
// integer fields are not rounded through float64 before conversion.
func decodePayload(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// enqueue offers t without blocking and reports whether it was queued.
func enqueue(ch chan<- monitor.Telemetry, t monitor.Telemetry) bool {
	select {
	case ch <- t:
		return true
	default:
		return false
	}
}

func topicFilters(topics []string) []mqtt.SubscribeRequest {
	reqs := make([]mqtt.SubscribeRequest, len(topics))
	for i, topic := range topics {
		reqs[i] = mqtt.SubscribeRequest{TopicFilter: []byte(topic), QoS: mqtt.QoS0}
	}
	return reqs
}

// splitHostPort splits a host:port string into separate host and port components.
// Returns an error if the format is invalid.
func splitHostPort(addr string) (host, port string, err error) {
	// Find the last colon to support IPv6 addresses
	colonIdx := -1
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			colonIdx = i
			break
		}
	}

	if colonIdx == -1 {
		return "", "", errors.New("missing port in address")
	}

	host = addr[:colonIdx]
	port = addr[colonIdx+1:]

	if host == "" {
		return "", "", errors.New("empty host")
	}
	if port == "" {
		return "", "", errors.New("empty port")
	}

	return host, port, nil
}

// parsePort converts a port string to uint16.
// Returns 0 if parsing fails or the value overflows.
func parsePort(portStr string) uint16 {
	var port uint32
	for i := 0; i < len(portStr); i++ {
		if portStr[i] < '0' || portStr[i] > '9' {
			return 0
		}
		port = port*10 + uint32(portStr[i]-'0')
		if port > 65535 {
			return 0
		}
	}
	return uint16(port)
}
