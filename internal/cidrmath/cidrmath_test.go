package cidrmath

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, s string) Block {
	t.Helper()
	b, err := Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return b
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{"0.0.0.0/0", "10.0.0.0/8", "10.0.0.128/25", "192.168.1.4/30", "172.16.0.1/32"} {
		b := mustParse(t, s)
		if b.String() != s {
			t.Fatalf("round trip %q: got %q", s, b.String())
		}
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, s := range []string{"", "10.0.0.0", "10.0.0.0/33", "10.0.0.0/-1", "256.0.0.0/8", "10.0.0/24", "fd00::/64", "10.0.0.1/24"} {
		if _, err := Parse(s); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("parse %q: expected ErrInvalidFormat, got %v", s, err)
		}
	}
}

func TestParseLenientMasksAndAcceptsBareAddress(t *testing.T) {
	b, err := ParseLenient("10.0.0.17/24")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.String() != "10.0.0.0/24" {
		t.Fatalf("expected masked 10.0.0.0/24, got %s", b)
	}

	b, err = ParseLenient("10.0.0.17")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.String() != "10.0.0.17/32" {
		t.Fatalf("expected 10.0.0.17/32, got %s", b)
	}
}

func TestNewRejectsUnalignedBase(t *testing.T) {
	if _, err := New(0x0a000001, 24); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	if _, err := New(0x0a000000, 24); err != nil {
		t.Fatalf("expected aligned base to pass, got %v", err)
	}
}

func TestNetworkAndBroadcastAddresses(t *testing.T) {
	tests := []struct {
		cidr      string
		network   string
		broadcast string
	}{
		{"10.0.0.0/24", "10.0.0.0", "10.0.0.255"},
		{"10.0.0.128/25", "10.0.0.128", "10.0.0.255"},
		{"192.168.1.4/30", "192.168.1.4", "192.168.1.7"},
		{"192.168.1.4/31", "192.168.1.4", "192.168.1.5"},
		{"192.168.1.4/32", "192.168.1.4", "192.168.1.4"},
	}
	for _, tt := range tests {
		b := mustParse(t, tt.cidr)
		if got := b.NetworkAddr().String(); got != tt.network {
			t.Errorf("%s network: expected %s, got %s", tt.cidr, tt.network, got)
		}
		if got := b.BroadcastAddr().String(); got != tt.broadcast {
			t.Errorf("%s broadcast: expected %s, got %s", tt.cidr, tt.broadcast, got)
		}
	}
}

func TestUsableHosts(t *testing.T) {
	tests := []struct {
		cidr string
		want uint64
	}{
		{"10.0.0.0/24", 254},
		{"10.0.0.0/25", 126},
		{"10.0.0.0/30", 2},
		{"10.0.0.0/31", 2},
		{"10.0.0.0/32", 1},
		{"10.0.0.0/8", 16777214},
	}
	for _, tt := range tests {
		if got := mustParse(t, tt.cidr).UsableHosts(); got != tt.want {
			t.Errorf("%s: expected %d usable hosts, got %d", tt.cidr, tt.want, got)
		}
	}
}

func TestRequiredPrefix(t *testing.T) {
	tests := []struct {
		hosts uint32
		want  int
	}{
		{0, 32},
		{1, 32},
		{2, 30},
		{100, 25},
		{254, 24},
		{255, 23},
		{65534, 16},
	}
	for _, tt := range tests {
		got, err := RequiredPrefix(tt.hosts)
		if err != nil {
			t.Fatalf("hosts=%d: %v", tt.hosts, err)
		}
		if got != tt.want {
			t.Errorf("hosts=%d: expected /%d, got /%d", tt.hosts, tt.want, got)
		}
		// Minimality: the returned prefix covers the request and the next
		// smaller block does not.
		block, err := New(0, got)
		if err != nil {
			t.Fatalf("new block /%d: %v", got, err)
		}
		if block.UsableHosts() < uint64(tt.hosts) {
			t.Errorf("hosts=%d: /%d does not cover request", tt.hosts, got)
		}
	}
}

func TestRequiredPrefixCapacityExceeded(t *testing.T) {
	if _, err := RequiredPrefix(4294967295); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestSubdivide(t *testing.T) {
	b := mustParse(t, "10.0.0.0/24")
	children, err := b.Subdivide(26)
	if err != nil {
		t.Fatalf("subdivide: %v", err)
	}
	want := []string{"10.0.0.0/26", "10.0.0.64/26", "10.0.0.128/26", "10.0.0.192/26"}
	if len(children) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(children))
	}
	for i, c := range children {
		if c.String() != want[i] {
			t.Errorf("child %d: expected %s, got %s", i, want[i], c)
		}
		if !b.Contains(c) {
			t.Errorf("child %s not contained in parent %s", c, b)
		}
	}
}

func TestSubdivideRejectsNonGrowingPrefix(t *testing.T) {
	b := mustParse(t, "10.0.0.0/24")
	for _, bits := range []int{23, 24, 33} {
		if _, err := b.Subdivide(bits); !errors.Is(err, ErrInvalidSplit) {
			t.Fatalf("subdivide to /%d: expected ErrInvalidSplit, got %v", bits, err)
		}
	}
}

func TestHalves(t *testing.T) {
	b := mustParse(t, "10.0.0.0/24")
	lo, hi, err := b.Halves()
	if err != nil {
		t.Fatalf("halves: %v", err)
	}
	if lo.String() != "10.0.0.0/25" || hi.String() != "10.0.0.128/25" {
		t.Fatalf("unexpected halves: %s, %s", lo, hi)
	}
}

func TestContainsAndOverlaps(t *testing.T) {
	outer := mustParse(t, "10.0.0.0/24")
	inner := mustParse(t, "10.0.0.128/25")
	sibling := mustParse(t, "10.0.1.0/24")

	if !outer.Contains(inner) {
		t.Error("expected /24 to contain its /25")
	}
	if inner.Contains(outer) {
		t.Error("expected /25 not to contain its /24")
	}
	if !outer.Overlaps(inner) || !inner.Overlaps(outer) {
		t.Error("expected nested blocks to overlap")
	}
	if outer.Overlaps(sibling) {
		t.Error("expected disjoint /24s not to overlap")
	}
	if !outer.ContainsAddr(mustParse(t, "10.0.0.42/32").Base()) {
		t.Error("expected /24 to contain 10.0.0.42")
	}

	root := mustParse(t, "0.0.0.0/0")
	if !root.Contains(outer) || !root.Contains(sibling) {
		t.Error("expected /0 to contain everything")
	}
}

func TestAlignmentInvariantAfterSubdivide(t *testing.T) {
	b := mustParse(t, "172.16.0.0/12")
	children, err := b.Subdivide(16)
	if err != nil {
		t.Fatalf("subdivide: %v", err)
	}
	for _, c := range children {
		if c.Base()&^Mask(c.Bits()) != 0 {
			t.Fatalf("child %s has host bits set", c)
		}
	}
}
