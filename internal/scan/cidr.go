package scan

import (
	"fmt"
	"net"
)

// HostAddresses expands an IPv4 CIDR block into its usable host addresses.
// For /30 and larger blocks the network and broadcast addresses are skipped;
// /31 and /32 have no such addresses and yield every address in the block.
func HostAddresses(cidr string) ([]string, error) {
	ip, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, cidr)
	}
	if ip.To4() == nil {
		return nil, fmt.Errorf("%w: %q is not IPv4", ErrInvalidRange, cidr)
	}

	ones, bits := ipnet.Mask.Size()
	skipEdges := bits-ones > 1

	var bcast net.IP
	if skipEdges {
		bcast = broadcastAddr(ipnet)
	}

	var hosts []string
	for ip := ip.Mask(ipnet.Mask); ipnet.Contains(ip); inc(ip) {
		if skipEdges {
			if ip.Equal(ipnet.IP) {
				continue // network address
			}
			if ip.Equal(bcast) {
				continue // broadcast address
			}
		}
		hosts = append(hosts, ip.String())
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyRange, cidr)
	}

	return hosts, nil
}

func inc(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}

func broadcastAddr(n *net.IPNet) net.IP {
	ip := make(net.IP, len(n.IP))
	for i := range ip {
		ip[i] = n.IP[i] | ^n.Mask[i]
	}
	return ip
}
