package column

import (
	"net"

	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// NewIPv4Column creates an empty IPv4 column, stored as a little-endian
// uint32 per row per §4.4.1.
func NewIPv4Column() Column { return newNumericColumn(chtype.IPv4(), uint32Codec()) }

// IPv4At converts a raw IPv4 column value (as returned by the underlying
// numericColumn[uint32]) into a net.IP.
func IPv4At(raw uint32) net.IP {
	return net.IPv4(byte(raw), byte(raw>>8), byte(raw>>16), byte(raw>>24)).To4()
}

// IPv4From converts a net.IP (4-byte form) into its little-endian uint32
// wire representation.
func IPv4From(ip net.IP) (uint32, error) {
	v4 := ip.To4()
	if v4 == nil {
		return 0, errs.InvalidInput("IPv4From: %v is not a valid IPv4 address", ip)
	}

	return uint32(v4[0]) | uint32(v4[1])<<8 | uint32(v4[2])<<16 | uint32(v4[3])<<24, nil
}

// ipv6Column stores IPv6 addresses as their raw 16-byte network-order form;
// unlike the other fixed-width kinds there is no little-endian
// reinterpretation to perform, the bytes are already an opaque address.
type ipv6Column struct {
	noopPrefix
	values [][16]byte
}

// NewIPv6Column creates an empty IPv6 column.
func NewIPv6Column() Column { return &ipv6Column{} }

func (c *ipv6Column) Type() chtype.Type { return chtype.IPv6() }
func (c *ipv6Column) Len() int          { return len(c.values) }
func (c *ipv6Column) AppendDefault()    { c.values = append(c.values, [16]byte{}) }
func (c *ipv6Column) Clear()            { c.values = c.values[:0] }

func (c *ipv6Column) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([][16]byte, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *ipv6Column) LoadBody(r *wire.Reader, rows int) error {
	values := make([][16]byte, rows)
	for i := 0; i < rows; i++ {
		if err := r.ReadFull(values[i][:]); err != nil {
			return errs.Protocol("ipv6 column body: %v", err)
		}
	}
	c.values = values

	return nil
}

func (c *ipv6Column) SaveBody(w *wire.Writer) error {
	for _, v := range c.values {
		w.WriteRaw(v[:])
	}

	return nil
}

func (c *ipv6Column) Slice(begin, n int) (Column, error) {
	if begin < 0 || n < 0 || begin+n > len(c.values) {
		return nil, errs.InvalidInput("ipv6 column slice [%d,%d) out of range len=%d", begin, begin+n, len(c.values))
	}

	out := &ipv6Column{values: append([][16]byte(nil), c.values[begin:begin+n]...)}

	return out, nil
}

func (c *ipv6Column) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*ipv6Column)
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into IPv6 column")
	}
	if begin < 0 || n < 0 || begin+n > len(o.values) {
		return errs.InvalidInput("ipv6 column AppendFrom range [%d,%d) out of bounds len=%d", begin, begin+n, len(o.values))
	}

	c.values = append(c.values, o.values[begin:begin+n]...)

	return nil
}

// Values returns the raw 16-byte address values.
func (c *ipv6Column) Values() [][16]byte { return c.values }

// AppendIP appends ip (must be a 16-byte form) as a new row.
func (c *ipv6Column) AppendIP(ip net.IP) error {
	v6 := ip.To16()
	if v6 == nil {
		return errs.InvalidInput("AppendIP: %v is not a valid IPv6 address", ip)
	}

	var raw [16]byte
	copy(raw[:], v6)
	c.values = append(c.values, raw)

	return nil
}

// At returns row i as a net.IP.
func (c *ipv6Column) At(i int) net.IP {
	return net.IP(c.values[i][:])
}
