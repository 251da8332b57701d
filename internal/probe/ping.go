package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	probing "github.com/prometheus-community/pro-bing"
)

// Echo performs the low-level reachability probe: one unprivileged ICMP/UDP
// echo against the host address, falling back to a TCP dial of the service
// port when echo replies are filtered or not permitted. Failure of both is
// reported as ErrNetworkUnreachable.
func (p *Prober) Echo(ctx context.Context) error {
	pinger, err := probing.NewPinger(p.host.Addr)
	if err == nil {
		pinger.SetPrivileged(false)
		pinger.Count = 1
		pinger.Timeout = p.timeouts.Echo
		if err := pinger.RunWithContext(ctx); err == nil && pinger.Statistics().PacketsRecv > 0 {
			return nil
		}
	}
	d := net.Dialer{Timeout: p.timeouts.Echo}
	conn, dialErr := d.DialContext(ctx, "tcp", net.JoinHostPort(p.host.Addr, strconv.Itoa(p.host.ServicePort)))
	if dialErr != nil {
		return fmt.Errorf("%w: %v", ErrNetworkUnreachable, dialErr)
	}
	conn.Close()
	return nil
}

// overlayPrefixes are interface name prefixes of common mesh/VPN links.
var overlayPrefixes = []string{"tailscale", "wg", "zt", "nebula", "ts"}

// OverlayLink checks that this machine has an up overlay interface (by name
// or a CGNAT 100.64.0.0/10 address). It inspects local state only and is
// used by troubleshoot to separate "not on the mesh" from "host is down".
func OverlayLink() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
	}
	cgnat := &net.IPNet{IP: net.IPv4(100, 64, 0, 0), Mask: net.CIDRMask(10, 32)}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		named := false
		for _, pfx := range overlayPrefixes {
			if strings.HasPrefix(iface.Name, pfx) {
				named = true
				break
			}
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok || ipnet.IP.To4() == nil {
				continue
			}
			if named || cgnat.Contains(ipnet.IP) {
				return fmt.Sprintf("%s (%s)", iface.Name, ipnet.IP), nil
			}
		}
	}
	return "", fmt.Errorf("no overlay interface up")
}
