package domain

type RegisterNetworkInput struct {
	CIDR        string
	Description string
}

// SizeRequest is either a host count to be converted into a prefix length,
// or an explicit prefix length. Use HostCountSize or PrefixSize.
type SizeRequest struct {
	hostCount uint32
	prefix    int
	byPrefix  bool
}

func HostCountSize(hosts uint32) SizeRequest {
	return SizeRequest{hostCount: hosts}
}

func PrefixSize(bits int) SizeRequest {
	return SizeRequest{prefix: bits, byPrefix: true}
}

type AllocateInput struct {
	Owner       string
	Kind        AllocationKind
	Size        SizeRequest
	Description string
}

// FindQuery looks allocations up by the address they cover or by owner tag.
// Exactly one field must be set.
type FindQuery struct {
	Address string
	Owner   string
}
