// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// routeAddress is any routable address. Dialing UDP sends no packets;
// it only asks the kernel which local address would be used.
const routeAddress = "192.0.2.1:9"

// LocalIP returns the address other devices on the LAN should use to
// reach this machine: the source address of the default route, or the
// first non-loopback IPv4 interface address when there is no route.
func LocalIP() (net.IP, error) {
	if connection, err := net.Dial("udp4", routeAddress); err == nil {
		defer connection.Close()
		if address, ok := connection.LocalAddr().(*net.UDPAddr); ok && !address.IP.IsUnspecified() {
			return address.IP, nil
		}
	}

	addresses, err := net.InterfaceAddrs()
	if err != nil {
		return nil, fmt.Errorf("listing interface addresses: %w", err)
	}
	if ip := firstLANAddress(addresses); ip != nil {
		return ip, nil
	}
	return nil, errors.New("no non-loopback IPv4 address found")
}

// firstLANAddress picks the first IPv4, non-loopback, non-link-local
// address.
func firstLANAddress(addresses []net.Addr) net.IP {
	for _, address := range addresses {
		network, ok := address.(*net.IPNet)
		if !ok {
			continue
		}
		ip := network.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		return ip
	}
	return nil
}

// JoinURL is the address the phone opens, e.g. https://192.168.1.5:3000.
func JoinURL(secure bool, ip net.IP, port int) string {
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return scheme + "://" + net.JoinHostPort(ip.String(), strconv.Itoa(port)) + "/"
}
