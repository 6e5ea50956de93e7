// Package cidrmath provides pure IPv4 CIDR arithmetic: parsing, network and
// broadcast addresses, usable-host counts, prefix sizing for a host count,
// subdivision, and containment/overlap checks. All functions operate on
// 32-bit unsigned integer addresses; nothing here touches the network.
package cidrmath

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"

	"go4.org/netipx"
)

var (
	ErrInvalidFormat    = errors.New("invalid cidr format")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrInvalidSplit     = errors.New("invalid split")
)

// Block is an immutable IPv4 address block: a prefix-aligned base address
// plus a prefix length. The zero value is 0.0.0.0/0.
type Block struct {
	base uint32
	bits int
}

// New returns the block with the given base and prefix length. It fails if
// bits is outside 0-32 or base has host bits set.
func New(base uint32, bits int) (Block, error) {
	if bits < 0 || bits > 32 {
		return Block{}, fmt.Errorf("%w: prefix length %d", ErrInvalidFormat, bits)
	}
	if base&^Mask(bits) != 0 {
		return Block{}, fmt.Errorf("%w: base %s has host bits set for /%d", ErrInvalidFormat, addrFromUint32(base), bits)
	}
	return Block{base: base, bits: bits}, nil
}

// Parse parses "A.B.C.D/N" into a Block. The address must be the true
// network address of the block; "10.0.0.1/24" is rejected rather than
// silently masked. Only IPv4 is supported.
func Parse(s string) (Block, error) {
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return Block{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if !p.Addr().Is4() {
		return Block{}, fmt.Errorf("%w: %q is not IPv4", ErrInvalidFormat, s)
	}
	if p.Masked() != p {
		return Block{}, fmt.Errorf("%w: %q is not a network address", ErrInvalidFormat, s)
	}
	return Block{base: uint32FromAddr(p.Addr()), bits: p.Bits()}, nil
}

// ParseLenient is Parse except that host bits are masked away instead of
// rejected, and a bare address is accepted as a /32. Intended for lookup
// inputs, not for blocks entering the ledger.
func ParseLenient(s string) (Block, error) {
	if p, err := netip.ParsePrefix(s); err == nil {
		if !p.Addr().Is4() {
			return Block{}, fmt.Errorf("%w: %q is not IPv4", ErrInvalidFormat, s)
		}
		p = p.Masked()
		return Block{base: uint32FromAddr(p.Addr()), bits: p.Bits()}, nil
	}
	if a, err := netip.ParseAddr(s); err == nil {
		if !a.Is4() {
			return Block{}, fmt.Errorf("%w: %q is not IPv4", ErrInvalidFormat, s)
		}
		return Block{base: uint32FromAddr(a), bits: 32}, nil
	}
	return Block{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// FromPrefix converts a netip.Prefix into a Block under Parse's strictness.
func FromPrefix(p netip.Prefix) (Block, error) {
	return Parse(p.String())
}

// Base returns the network address as a 32-bit unsigned integer.
func (b Block) Base() uint32 { return b.base }

// Bits returns the prefix length.
func (b Block) Bits() int { return b.bits }

// Size returns the total number of addresses in the block.
func (b Block) Size() uint64 { return 1 << (32 - b.bits) }

// Prefix returns the block as a netip.Prefix.
func (b Block) Prefix() netip.Prefix {
	return netip.PrefixFrom(addrFromUint32(b.base), b.bits)
}

func (b Block) String() string { return b.Prefix().String() }

// NetworkAddr returns the first address of the block.
func (b Block) NetworkAddr() netip.Addr { return addrFromUint32(b.base) }

// BroadcastAddr returns the last address of the block. For /31 and /32 this
// equals the second or only address; there is no dedicated broadcast.
func (b Block) BroadcastAddr() netip.Addr {
	return netipx.RangeOfPrefix(b.Prefix()).To()
}

// UsableHosts returns the number of assignable host addresses. Prefixes
// shorter than /31 lose the network and broadcast addresses; /31 keeps both
// ends per RFC 3021 and /32 is a single host route.
func (b Block) UsableHosts() uint64 {
	if b.bits >= 31 {
		return b.Size()
	}
	return b.Size() - 2
}

// Contains reports whether other lies entirely within b.
func (b Block) Contains(other Block) bool {
	return other.bits >= b.bits && other.base&Mask(b.bits) == b.base
}

// ContainsAddr reports whether the address lies within b.
func (b Block) ContainsAddr(addr uint32) bool {
	return addr&Mask(b.bits) == b.base
}

// Overlaps reports whether b and other share any address. Since both are
// prefix-aligned, overlap is equivalent to one containing the other.
func (b Block) Overlaps(other Block) bool {
	return b.Contains(other) || other.Contains(b)
}

// Subdivide splits b into 2^(newBits-bits) contiguous equal children of
// prefix length newBits, in ascending address order. The child count grows
// exponentially with the prefix delta; callers splitting deep should halve
// one level at a time instead.
func (b Block) Subdivide(newBits int) ([]Block, error) {
	if newBits <= b.bits || newBits > 32 {
		return nil, fmt.Errorf("%w: /%d into /%d", ErrInvalidSplit, b.bits, newBits)
	}
	count := uint64(1) << (newBits - b.bits)
	step := uint32(1) << (32 - newBits)
	out := make([]Block, 0, count)
	for i := uint64(0); i < count; i++ {
		out = append(out, Block{base: b.base + uint32(i)*step, bits: newBits})
	}
	return out, nil
}

// Halves splits b into its two buddy children.
func (b Block) Halves() (Block, Block, error) {
	children, err := b.Subdivide(b.bits + 1)
	if err != nil {
		return Block{}, Block{}, err
	}
	return children[0], children[1], nil
}

// RequiredPrefix returns the smallest block (numerically largest prefix
// length) whose classic usable-host count 2^(32-P)-2 covers hosts. A single
// host maps to /32. It fails when no prefix can satisfy the request.
func RequiredPrefix(hosts uint32) (int, error) {
	if hosts <= 1 {
		return 32, nil
	}
	for bits := 30; bits >= 0; bits-- {
		usable := (uint64(1) << (32 - bits)) - 2
		if usable >= uint64(hosts) {
			return bits, nil
		}
	}
	return 0, fmt.Errorf("%w: %d hosts", ErrCapacityExceeded, hosts)
}

// Mask returns the network mask for a prefix length as a 32-bit integer.
func Mask(bits int) uint32 {
	if bits <= 0 {
		return 0
	}
	return ^uint32(0) << (32 - bits)
}

func addrFromUint32(v uint32) netip.Addr {
	var raw [4]byte
	binary.BigEndian.PutUint32(raw[:], v)
	return netip.AddrFrom4(raw)
}

func uint32FromAddr(a netip.Addr) uint32 {
	raw := a.As4()
	return binary.BigEndian.Uint32(raw[:])
}
