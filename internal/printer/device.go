package printer

import (
	"context"
	"fmt"
	"net"
	"time"
)

// Device is a paired raw print target with an explicit lifecycle. The
// print path acquires the device, writes the command stream and releases
// it per job; tests substitute a fake.
type Device interface {
	Acquire(ctx context.Context) error
	Write(ctx context.Context, data []byte) error
	Release() error
}

// NetworkDevice drives a raw-socket ESC/POS printer (the common
// port-9100 style target)
type NetworkDevice struct {
	addr string
	conn net.Conn
}

// NewNetworkDevice creates a device for the given host:port address
func NewNetworkDevice(addr string) *NetworkDevice {
	return &NetworkDevice{addr: addr}
}

// Acquire dials the printer
func (d *NetworkDevice) Acquire(ctx context.Context) error {
	dialer := net.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", d.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to printer %s: %w", d.addr, err)
	}
	d.conn = conn
	return nil
}

// Write sends the command stream to the printer
func (d *NetworkDevice) Write(ctx context.Context, data []byte) error {
	if d.conn == nil {
		return fmt.Errorf("printer not acquired")
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = d.conn.SetWriteDeadline(deadline)
	}
	if _, err := d.conn.Write(data); err != nil {
		return fmt.Errorf("failed to write to printer: %w", err)
	}
	return nil
}

// Release closes the connection
func (d *NetworkDevice) Release() error {
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// NopDevice accepts and discards print jobs. Used when no hardware is
// paired; receipt bytes are still available to callers for host-dialog
// printing.
type NopDevice struct{}

// Acquire always succeeds
func (NopDevice) Acquire(context.Context) error { return nil }

// Write discards the data
func (NopDevice) Write(context.Context, []byte) error { return nil }

// Release always succeeds
func (NopDevice) Release() error { return nil }
