package sysinfo

import (
	"net"
	"os"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
)

// DiscoverIdentity computes the instance identity from the hostname and the
// first non-loopback IPv4 address. podName and namespace come from config.
func DiscoverIdentity(podName, namespace string) apiv1.InstanceIdentity {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	var addrs []net.Addr
	if ifaces, err := net.Interfaces(); err == nil {
		for _, iface := range ifaces {
			if iface.Flags&net.FlagLoopback != 0 {
				continue
			}
			ifAddrs, err := iface.Addrs()
			if err != nil {
				continue
			}
			addrs = append(addrs, ifAddrs...)
		}
	}

	return NewIdentity(hostname, pickIPv4(addrs), podName, namespace)
}

// NewIdentity assembles an identity, defaulting the pod name to the hostname.
func NewIdentity(hostname, ip, podName, namespace string) apiv1.InstanceIdentity {
	if podName == "" {
		podName = hostname
	}
	if namespace == "" {
		namespace = "default"
	}
	return apiv1.InstanceIdentity{
		Hostname:   hostname,
		IPAddress:  ip,
		InstanceID: hostname + "-" + ip,
		PodName:    podName,
		Namespace:  namespace,
	}
}

// pickIPv4 returns the first non-loopback IPv4 address, or "localhost".
func pickIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip == nil || ip.IsLoopback() {
			continue
		}
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return "localhost"
}
