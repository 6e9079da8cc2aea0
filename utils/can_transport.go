package utils

import (
	"context"
	"net"

	"github.com/pkg/errors"
	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

// CANWriter transmits frames to the actuator bus
type CANWriter interface {
	WriteFrame(ctx context.Context, frame can.Frame) error
	Close() error
}

// CANReader receives frames from the operator console and sensors
type CANReader interface {
	ReadFrame(ctx context.Context) (can.Frame, error)
	Close() error
}

type SocketCANWriter struct {
	conn net.Conn
	tx   *socketcan.Transmitter
}

func NewSocketCANWriter(ctx context.Context, iface string) (*SocketCANWriter, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, errors.Wrap(err, "socketcan dial")
	}
	return &SocketCANWriter{
		conn: conn,
		tx:   socketcan.NewTransmitter(conn),
	}, nil
}

func (w *SocketCANWriter) WriteFrame(ctx context.Context, frame can.Frame) error {
	return w.tx.TransmitFrame(ctx, frame)
}

func (w *SocketCANWriter) Close() error {
	if w.conn != nil {
		return w.conn.Close()
	}
	return nil
}

type SocketCANReader struct {
	conn  net.Conn
	recv  *socketcan.Receiver
	frame chan can.Frame
	err   chan error

	pending bool // a receive is still in flight
}

func NewSocketCANReader(ctx context.Context, iface string) (*SocketCANReader, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, errors.Wrap(err, "socketcan dial")
	}
	return &SocketCANReader{
		conn:  conn,
		recv:  socketcan.NewReceiver(conn),
		frame: make(chan can.Frame, 1),
		err:   make(chan error, 1),
	}, nil
}

// ReadFrame blocks until a frame arrives or ctx is done. A receive abandoned
// by ctx is delivered by the next call.
func (r *SocketCANReader) ReadFrame(ctx context.Context) (can.Frame, error) {
	if !r.pending {
		r.pending = true
		go r.receive()
	}

	select {
	case <-ctx.Done():
		return can.Frame{}, ctx.Err()
	case frame := <-r.frame:
		r.pending = false
		return frame, nil
	case err := <-r.err:
		r.pending = false
		return can.Frame{}, err
	}
}

func (r *SocketCANReader) receive() {
	if r.recv.Receive() {
		r.frame <- r.recv.Frame()
		return
	}
	err := r.recv.Err()
	if err == nil {
		err = errors.New("socketcan receiver closed")
	}
	r.err <- err
}

func (r *SocketCANReader) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
