//go:build rp2040

// Package cyw43439 brings up WiFi on the Badger 2040 W (CYW43439 chip) and
// runs the lneto network stack the MQTT client dials through.
//
// Bring-up joins the configured network, retrying forever, then leases an
// address with DHCP and falls back to a static address when one is given.
// Setup starts the Poll packet pump itself; callers must not start another.
//
// Adapted from the examples in the soypat/cyw43439 repository:
// https://github.com/soypat/cyw43439/tree/main/examples/common
package cyw43439

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"net/netip"
	"runtime"
	"time"

	"github.com/soypat/cyw43439"
	"github.com/soypat/lneto/x/xnet"
)

const mtu = cyw43439.MTU

// Set with -ldflags "-X .../cyw43439.ssid=... -X .../cyw43439.pass=...".
var (
	ssid string
	pass string
)

// Config configures WiFi and the network stack.
type Config struct {
	// Hostname is used for DHCP requests. Required.
	Hostname string
	// MaxTCPPorts is the number of TCP ports to open for the stack.
	MaxTCPPorts int
	// StaticAddr is requested over DHCP and assigned directly if DHCP fails.
	StaticAddr netip.Addr
	// JoinRetry is the pause between failed join attempts.
	JoinRetry time.Duration
	Logger    *slog.Logger
}

// Stack wraps the lneto StackAsync and the CYW43439 device.
type Stack struct {
	s       xnet.StackAsync
	dev     *cyw43439.Device
	log     *slog.Logger
	sendbuf []byte
}

// Setup initializes the chip, joins the network set at build time and
// leases an address. Errors are hardware or DHCP failures; join failures
// are retried.
func Setup(cfg Config) (*Stack, error) {
	if cfg.Hostname == "" {
		return nil, errors.New("empty hostname")
	}
	if ssid == "" {
		return nil, errors.New("no ssid set at build time")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	retry := cfg.JoinRetry
	if retry <= 0 {
		retry = 5 * time.Second
	}

	start := time.Now()
	dev := cyw43439.NewPicoWDevice()
	dev.SetLogger(logger)

	err := dev.Init(cyw43439.DefaultWifiConfig())
	if err != nil {
		return nil, errors.New("wifi init failed:" + err.Error())
	}
	logger.Info("cyw43439:init", slog.Duration("duration", time.Since(start)))

	logger.Info("wifi:joining", slog.String("ssid", ssid), slog.Bool("secure", pass != ""))
	for {
		err = dev.JoinWPA2(ssid, pass)
		if err == nil {
			break
		}
		logger.Error("wifi:join-failed", slog.String("err", err.Error()))
		time.Sleep(retry)
	}

	mac, err := dev.HardwareAddr6()
	if err != nil {
		return nil, errors.New("get hardware address:" + err.Error())
	}
	logger.Info("wifi:joined", slog.String("mac", net.HardwareAddr(mac[:]).String()))

	stack := &Stack{
		dev:     dev,
		log:     logger,
		sendbuf: make([]byte, mtu),
	}
	err = stack.s.Reset(xnet.StackConfig{
		Hostname:        cfg.Hostname,
		MaxTCPConns:     max(cfg.MaxTCPPorts, 1),
		RandSeed:        time.Since(start).Nanoseconds(),
		HardwareAddress: mac,
		MTU:             mtu,
	})
	if err != nil {
		return nil, errors.New("stack reset:" + err.Error())
	}
	dev.RecvEthHandle(func(pkt []byte) error {
		return stack.s.Demux(pkt, 0)
	})

	// DHCP needs packets flowing.
	go stack.Poll()

	err = stack.dhcp(cfg.StaticAddr)
	if err != nil {
		return nil, err
	}
	return stack, nil
}

func (s *Stack) dhcp(static netip.Addr) error {
	requested := netip.AddrFrom4([4]byte{})
	if static.IsValid() {
		if !static.Is4() {
			return errors.New("only dhcpv4 supported")
		}
		requested = static
	}

	const pollTime = 50 * time.Millisecond
	rstack := s.s.StackRetrying(pollTime)

	s.log.Info("dhcp:starting")
	results, err := rstack.DoDHCPv4(requested.As4(), 3*time.Second, 3)
	if err != nil {
		if !requested.IsUnspecified() {
			s.log.Info("dhcp:static-fallback", slog.String("ip", requested.String()))
			s.s.SetIPAddr(requested)
			return nil
		}
		return errors.New("dhcp failed:" + err.Error())
	}

	err = s.s.AssimilateDHCPResults(results)
	if err != nil {
		return errors.New("assimilate dhcp:" + err.Error())
	}

	gatewayHW, err := rstack.DoResolveHardwareAddress6(results.Router, 500*time.Millisecond, 4)
	if err != nil {
		return errors.New("resolve gateway:" + err.Error())
	}
	s.s.SetGateway6(gatewayHW)

	s.log.Info("dhcp:complete",
		slog.String("ourIP", results.AssignedAddr.String()),
		slog.String("router", results.Router.String()),
		slog.Uint64("lease_sec", uint64(results.TLease)),
	)
	return nil
}

// Poll moves packets between the chip and the stack forever. It yields
// whenever there is nothing to do.
func (s *Stack) Poll() {
	for {
		send, recv, _ := s.recvAndSend()
		if send == 0 && recv == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		runtime.Gosched()
	}
}

func (s *Stack) recvAndSend() (send, recv int, err error) {
	gotPacket, errRecv := s.dev.PollOne()
	if gotPacket {
		recv = 1
	}
	if errRecv != nil {
		s.log.Error("stack:poll-one", slog.String("err", errRecv.Error()))
	}

	send, err = s.s.Encapsulate(s.sendbuf, -1, 0)
	if err != nil {
		s.log.Error("stack:encapsulate", slog.Int("plen", send), slog.String("err", err.Error()))
	} else {
		err = errRecv
	}
	if send == 0 {
		return send, recv, err
	}

	err = s.dev.SendEth(s.sendbuf[:send])
	if err != nil {
		s.log.Error("stack:send-eth", slog.Int("plen", send), slog.String("err", err.Error()))
	}
	return send, recv, err
}

// LnetoStack returns the underlying lneto StackAsync for TCP and DNS.
func (s *Stack) LnetoStack() *xnet.StackAsync {
	return &s.s
}

// Addr returns the current IP address of the stack.
func (s *Stack) Addr() netip.Addr {
	return s.s.Addr()
}
